package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/pkg/config"
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/solver"
)

// validateCommand creates the validate command for checking a site file.
func (c *CLI) validateCommand() *cobra.Command {
	var overrides settingsFlags
	cmd := &cobra.Command{
		Use:   "validate [site.json]",
		Short: "Check a site file without solving it",
		Long: `Check a site file without solving it.

The validate command decodes the site, checks that the boundary is a closed,
planar, simple curve enclosing some area, checks the effective settings, and
shows where each access point lands on the boundary.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := overrides.overlay(cmd)
			if err != nil {
				return err
			}
			return c.runValidate(args[0], o)
		},
	}
	overrides.register(cmd)
	return cmd
}

func (c *CLI) runValidate(input string, overrides config.Overlay) error {
	prog := newProgress(c.Logger)

	site, err := c.loadSite(input, overrides)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	if ok, msg := solver.Validate(site.Boundary); !ok {
		printError("%s", msg)
		return errors.New(errors.ErrCodeInvalidBoundary, "%s", msg)
	}
	if err := site.Settings.Validate(); err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	prog.done("Validated " + input)

	printSuccess("Site is valid")
	printKeyValue("Edges", strconv.Itoa(len(solver.UsableEdges(site.Boundary))))
	printKeyValue("Axial lines", strconv.Itoa(len(site.AxialLines)))
	printKeyValue("Access", strconv.Itoa(len(site.AccessPoints)))
	for i, ap := range solver.ResolveAccessPoints(site.AccessPoints, site.Boundary) {
		p := ap.Location
		printDetail("%d at (%.0f, %.0f, %.0f), %.0f wide", i, p.X, p.Y, p.Z, ap.Width)
	}
	if len(site.AccessPoints) == 0 {
		printWarning("no access points; the lot will have no entrance")
	}
	return nil
}
