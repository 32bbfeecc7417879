// Package pipeline runs the solve → render pipeline for the CLI and the HTTP
// API, with caching and observability hooks.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Solve: validate the site and compute the lot layout
//  2. Render: produce output artifacts (SVG, PNG, PDF, JSON, DOT)
//
// Both stages are cached by content hash. A solve is keyed by its request
// (boundary, access points, axial lines and settings); an artifact by the
// lot it was drawn from and its render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, req, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	pl, err := runner.Solve(ctx, req, opts)
//	artifacts, err := runner.Render(ctx, pl, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sardine/pkg/cache"
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/render/sink"
	"github.com/matzehuels/sardine/pkg/solver"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG     = "svg"     // site plan
	FormatPNG     = "png"     // site plan, rasterized
	FormatPDF     = "pdf"     // site plan
	FormatJSON    = "json"    // lot document
	FormatDOT     = "dot"     // road network, Graphviz source
	FormatNetwork = "network" // road network laid out to SVG
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatNetwork}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`

	// Plan drawing
	Width  int     `json:"width,omitempty"` // pixels
	Labels bool    `json:"labels,omitempty"`
	Skirt  bool    `json:"skirt,omitempty"`
	Edges  bool    `json:"edges,omitempty"`
	Scale  float64 `json:"scale,omitempty"` // PNG only

	// Reach joins road-network nodes whose corridors are this far apart.
	// Zero derives it from the solve settings.
	Reach float64 `json:"reach,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lot is the solved layout.
	Lot *lot.ParkingLot

	// RequestHash is the content hash of the solve request.
	RequestHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	lot.Stats
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // lot came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Width == 0 {
		o.Width = sink.DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender applies defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateFormats(o.Formats, ValidFormats...); err != nil {
		return err
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %d", o.Width)
	}
	if o.Reach < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "reach must not be negative, got %g", o.Reach)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Width, k.Labels, k.Skirt, k.Edges = o.Width, o.Labels, o.Skirt, o.Edges
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	case FormatDOT, FormatNetwork:
		k.Reach = o.Reach
	}
	return k
}

// DefaultReach is the road-network reach for settings s: interior aisles
// end one spot row and one drive lane short of the perimeter guide.
func DefaultReach(s lot.Settings) float64 {
	return solver.Depth(s) + s.PeripheralRoadWidth
}

// =============================================================================
// Request Hashing
// =============================================================================

type requestKey struct {
	Boundary     []geom.Point      `json:"boundary"`
	Closed       bool              `json:"closed"`
	AccessPoints []lot.AccessPoint `json:"access_points"`
	AxialLines   [][]geom.Point    `json:"axial_lines"`
	Settings     lot.Settings      `json:"settings"`
}

// RequestHash returns the content hash of a solve request. Requests that
// differ only in how their curves are represented hash alike. A request
// holding non-finite numbers cannot be encoded and returns an INVALID_INPUT
// error.
func RequestHash(req solver.Request) (string, error) {
	k := requestKey{
		Boundary:     geom.Vertices(req.Boundary),
		AccessPoints: req.AccessPoints,
		Settings:     req.Settings,
	}
	if !geom.IsNil(req.Boundary) {
		k.Closed = req.Boundary.IsClosed()
	}
	for _, l := range req.AxialLines {
		k.AxialLines = append(k.AxialLines, geom.Vertices(l))
	}
	h, err := cache.HashJSON(k)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode solve request")
	}
	return h, nil
}
