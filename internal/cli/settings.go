package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/pkg/config"
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/lot"
)

// settingsCommand creates the settings management command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage layout settings",
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsInitCommand())
	cmd.AddCommand(c.settingsPathCommand())

	return cmd
}

// settingsShowCommand creates the "settings show" subcommand.
func (c *CLI) settingsShowCommand() *cobra.Command {
	var overrides settingsFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.baseSettings()
			if err != nil {
				return err
			}
			o, err := overrides.overlay(cmd)
			if err != nil {
				return err
			}
			s = o.Apply(s)
			if err := s.Validate(); err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), s)
		},
	}
	overrides.register(cmd)
	return cmd
}

// settingsInitCommand creates the "settings init" subcommand.
func (c *CLI) settingsInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a settings file with the default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settingsHint()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			data, err := config.Marshal(lot.DefaultSettings())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create settings dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write settings: %w", err)
			}
			printSuccess("Wrote default settings")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// settingsPathCommand creates the "settings path" subcommand.
func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), settingsHint())
			return nil
		},
	}
}

// =============================================================================
// Settings Flags
// =============================================================================

// settingsFlags are per-run overrides of the layout settings.
type settingsFlags struct {
	spotWidth  float64
	spotLength float64
	spotAngle  float64
	roadWidth  float64
	axialWidth float64
	aisleWidth float64
	skirt      float64
	fill       bool
	perimeter  string
	align      string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	d := lot.DefaultSettings()
	flags := cmd.Flags()
	flags.Float64Var(&f.spotWidth, "spot-width", d.SpotWidth, "stall width (cm)")
	flags.Float64Var(&f.spotLength, "spot-length", d.SpotLength, "stall length (cm)")
	flags.Float64Var(&f.spotAngle, "spot-angle", d.SpotAngle, "stall angle to the drive lane (degrees)")
	flags.Float64Var(&f.roadWidth, "road-width", d.PeripheralRoadWidth, "perimeter road width (cm)")
	flags.Float64Var(&f.axialWidth, "axial-width", d.AxialRoadWidth, "axial road width (cm)")
	flags.Float64Var(&f.aisleWidth, "aisle-width", d.AisleWidth, "interior aisle width (cm)")
	flags.Float64Var(&f.skirt, "skirt-offset", d.SkirtOffset, "landscaping setback from the boundary (cm)")
	flags.BoolVar(&f.fill, "fill", d.FillInterior, "fill the interior with rows")
	flags.StringVar(&f.perimeter, "perimeter", d.PerimeterMode.String(), "perimeter mode: none, one_side, double")
	flags.StringVar(&f.align, "align", d.RowAlignment.String(), "interior row alignment: edge, axis")
	_ = cmd.RegisterFlagCompletionFunc("perimeter", completePerimeterModes)
	_ = cmd.RegisterFlagCompletionFunc("align", completeAlignments)
}

// overlay returns the settings whose flags were set on the command line.
func (f *settingsFlags) overlay(cmd *cobra.Command) (config.Overlay, error) {
	var o config.Overlay
	flags := cmd.Flags()
	for name, dst := range map[string]**float64{
		"spot-width":   &o.SpotWidth,
		"spot-length":  &o.SpotLength,
		"spot-angle":   &o.SpotAngle,
		"road-width":   &o.PeripheralRoadWidth,
		"axial-width":  &o.AxialRoadWidth,
		"aisle-width":  &o.AisleWidth,
		"skirt-offset": &o.SkirtOffset,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = &v
		}
	}
	if flags.Changed("fill") {
		o.FillInterior = &f.fill
	}
	if flags.Changed("perimeter") {
		var m lot.PerimeterMode
		if err := m.UnmarshalText([]byte(f.perimeter)); err != nil {
			return o, errors.Wrap(errors.ErrCodeInvalidSettings, err, "--perimeter")
		}
		o.PerimeterMode = &m
	}
	if flags.Changed("align") {
		var a lot.RowAlignment
		if err := a.UnmarshalText([]byte(f.align)); err != nil {
			return o, errors.Wrap(errors.ErrCodeInvalidSettings, err, "--align")
		}
		o.RowAlignment = &a
	}
	return o, nil
}
