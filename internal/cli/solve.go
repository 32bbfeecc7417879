package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/pkg/config"
	pkgio "github.com/matzehuels/sardine/pkg/io"
	"github.com/matzehuels/sardine/pkg/pipeline"
	"github.com/matzehuels/sardine/pkg/solver"
)

// solveCommand creates the solve command for laying out a site.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		overrides  settingsFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve [site.json]",
		Short: "Lay out a parking lot for a site",
		Long: `Lay out a parking lot for a site.

The solve command reads a site file (boundary, access points and optional
axial lines), computes the layout and writes the requested outputs next to
the input: <site>.svg for the plan and <site>.lot.json for the lot document.

Settings come from the --settings file (or the user settings file), then the
site's own "settings" block, then the flags below.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			o, err := overrides.overlay(cmd)
			if err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], opts, o, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	addRenderFlags(cmd, &opts, &formatsStr)
	overrides.register(cmd)

	return cmd
}

// runSolve loads the site, solves it and writes the outputs.
func (c *CLI) runSolve(ctx context.Context, input string, opts pipeline.Options, overrides config.Overlay, output string, noCache bool) error {
	site, err := c.loadSite(input, overrides)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Solving layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, solver.Request{
		Boundary:     site.Boundary,
		AccessPoints: site.AccessPoints,
		AxialLines:   site.AxialLines,
		Settings:     site.Settings,
	}, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	title := "Layout complete"
	if site.Name != "" {
		title += ": " + site.Name
	}
	printSuccess("%s", title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Stats, result.CacheInfo.SolveHit)
	printWarnings(result.Lot.Warnings)
	if lotPath := jsonOutput(paths, opts.Formats); lotPath != "" {
		printNewline()
		printNextStep("Render", appName+" render -f png "+lotPath)
	}

	return nil
}

// loadSite reads a site over the base settings and applies flag overrides.
func (c *CLI) loadSite(input string, overrides config.Overlay) (*pkgio.Site, error) {
	base, err := c.baseSettings()
	if err != nil {
		return nil, err
	}
	site, err := pkgio.ImportSiteWith(input, base)
	if err != nil {
		return nil, err
	}
	if !overrides.IsZero() {
		site.Settings = overrides.Apply(site.Settings)
		if err := site.Settings.Validate(); err != nil {
			return nil, err
		}
	}
	return site, nil
}

// jsonOutput returns the path the lot document was written to, if any.
func jsonOutput(paths, formats []string) string {
	i := 0
	for _, f := range formats {
		if i >= len(paths) {
			break
		}
		if f == pipeline.FormatJSON {
			return paths[i]
		}
		i++
	}
	return ""
}
