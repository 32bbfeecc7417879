// Package render turns solved parking lots into pictures and documents.
//
// # Overview
//
// The [sink] subpackage does the drawing:
//
//   - SVG site plan: boundary, roads, spots and access points
//   - JSON lot document (the same format package io reads back)
//   - Road-network topology as Graphviz DOT, or laid out to SVG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(pl)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/sardine/pkg/render/sink
package render
