package sink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// Link joins two nodes of the road network. Node names are "road-<i>" and
// "access-<i>", indexing the lot's Roads and AccessPoints.
type Link struct {
	From, To string
	Gap      float64 // corridor gap in centimetres, 0 where they touch
}

// DOTOption configures [ToDOT].
type DOTOption func(*dotBuilder)

type dotBuilder struct {
	reach float64
}

// WithReach lets roads whose corridors are up to d apart count as joined.
// Interior aisles stop one spot row and one drive lane short of the
// perimeter guide, so a reach of spot depth plus road width joins them.
func WithReach(d float64) DOTOption { return func(b *dotBuilder) { b.reach = d } }

// Network computes the links of the road network.
func Network(pl *lot.ParkingLot, opts ...DOTOption) []Link {
	b := dotBuilder{}
	for _, opt := range opts {
		opt(&b)
	}
	if pl == nil || geom.IsNil(pl.Boundary) {
		return nil
	}
	plane, ok := pl.Boundary.Plane()
	if !ok {
		return nil
	}

	paths := make([]orb.LineString, len(pl.Roads))
	for i, r := range pl.Roads {
		if !geom.IsNil(r.Centerline) {
			paths[i] = geom.LocalPath(plane, r.Centerline)
		}
	}

	var links []Link
	for i := range pl.Roads {
		for j := i + 1; j < len(pl.Roads); j++ {
			d := geom.PathDistance(paths[i], paths[j])
			gap := math.Max(0, d-(pl.Roads[i].Width+pl.Roads[j].Width)/2)
			if gap <= b.reach+geom.DefaultTolerance {
				links = append(links, Link{From: roadNode(i), To: roadNode(j), Gap: gap})
			}
		}
	}

	for i, ap := range pl.AccessPoints {
		p := orb.LineString{plane.ToLocal(ap.Location)}
		best, bestDist := -1, math.Inf(1)
		for j := range pl.Roads {
			if d := geom.PathDistance(p, paths[j]); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best >= 0 {
			gap := math.Max(0, bestDist-pl.Roads[best].Width/2)
			links = append(links, Link{From: accessNode(i), To: roadNode(best), Gap: gap})
		}
	}
	return links
}

// ToDOT converts the road network of pl to Graphviz DOT.
func ToDOT(pl *lot.ParkingLot, opts ...DOTOption) string {
	var buf bytes.Buffer
	buf.WriteString("graph roads {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	if pl != nil {
		for i, r := range pl.Roads {
			label := fmt.Sprintf("%s\\n%.0f cm", r.Type, r.Width)
			if !geom.IsNil(r.Centerline) {
				label += fmt.Sprintf("\\n%.1f m", r.Centerline.Length()/100)
			}
			fmt.Fprintf(&buf, "  %q [label=\"%s\"];\n", roadNode(i), label)
		}
		for i := range pl.AccessPoints {
			fmt.Fprintf(&buf, "  %q [label=\"access %d\", shape=circle, fillcolor=\"#f4cccc\"];\n", accessNode(i), i)
		}
	}

	buf.WriteString("\n")
	for _, l := range Network(pl, opts...) {
		fmt.Fprintf(&buf, "  %q -- %q;\n", l.From, l.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT lays out a DOT graph to SVG using Graphviz.
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

func roadNode(i int) string   { return "road-" + strconv.Itoa(i) }
func accessNode(i int) string { return "access-" + strconv.Itoa(i) }

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel one so the graph scales like the plan.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
