package pipeline

import (
	"fmt"

	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/render"
	"github.com/matzehuels/sardine/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(pl *lot.ParkingLot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.Reach == 0 {
		opts.Reach = DefaultReach(lot.DefaultSettings())
	}

	artifacts := make(map[string][]byte)
	var plan []byte // shared by svg, png and pdf
	var dot string  // shared by dot and network

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG, FormatPNG, FormatPDF:
			if plan == nil {
				plan = sink.RenderSVG(pl, buildSVGOptions(opts)...)
			}
			switch format {
			case FormatSVG:
				data = plan
			case FormatPNG:
				data, err = render.ToPNG(plan, opts.Scale)
			case FormatPDF:
				data, err = render.ToPDF(plan)
			}
		case FormatJSON:
			data, err = sink.RenderJSON(pl)
		case FormatDOT, FormatNetwork:
			if dot == "" {
				dot = sink.ToDOT(pl, sink.WithReach(opts.Reach))
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = sink.RenderDOT(dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds site-plan rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithWidth(opts.Width)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Skirt {
		svgOpts = append(svgOpts, sink.WithSkirt())
	}
	if opts.Edges {
		svgOpts = append(svgOpts, sink.WithRoadEdges())
	}
	return svgOpts
}
