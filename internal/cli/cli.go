// Package cli implements the sardine command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/pkg/buildinfo"
	"github.com/matzehuels/sardine/pkg/cache"
	"github.com/matzehuels/sardine/pkg/config"
	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/observability"
	"github.com/matzehuels/sardine/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sardine"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsPath is the --settings flag; empty means discover.
	settingsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP hooks also log their events.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
		observability.SetCacheHooks(observability.LogCacheHooks{Logger: c.Logger})
		observability.SetHTTPHooks(observability.LogHTTPHooks{Logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sardine lays out parking lots",
		Long:         `Sardine is a CLI tool for laying out surface parking lots: given a site boundary and its access points it places perimeter stalls, drive lanes and interior rows, and renders the result as a site plan.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "settings file (default: "+settingsHint()+")")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Settings
// =============================================================================

// baseSettings returns the settings a site's overrides are applied to: the
// --settings file if given, else the discovered user file, else the
// defaults.
func (c *CLI) baseSettings() (lot.Settings, error) {
	if c.settingsPath != "" {
		return config.Load(c.settingsPath)
	}
	s, path, err := config.Discover()
	if path != "" {
		c.Logger.Debug("using settings file", "path", path)
	}
	return s, err
}

func settingsHint() string {
	dir, err := config.Dir()
	if err != nil {
		return config.FileName
	}
	return filepath.Join(dir, config.FileName)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sardine/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// addRenderFlags registers the plan drawing flags shared by solve and render.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, network (comma-separated)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "drawing width in pixels")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label spots with their index")
	cmd.Flags().BoolVar(&opts.Skirt, "skirt", false, "draw the landscaping skirt")
	cmd.Flags().BoolVar(&opts.Edges, "edges", false, "outline road edges")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.Reach, "reach", 0, "road network link distance (default: spot depth plus road width)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}
