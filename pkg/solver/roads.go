package solver

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// BuildPerimeterRoads returns the perimeter road running along the offset
// boundary: a single road whose centerline is the given curve. A null curve
// yields no roads.
func BuildPerimeterRoads(offsetBoundary geom.Curve, s lot.Settings) []lot.Road {
	if geom.IsNil(offsetBoundary) {
		return nil
	}
	return []lot.Road{{
		Centerline: offsetBoundary,
		Width:      s.PeripheralRoadWidth,
		Type:       lot.RoadPerimeter,
	}}
}

// BuildAisleRoads returns an aisle road for each centerline, with edges half
// the aisle width to either side within plane.
func BuildAisleRoads(centerlines []geom.Line, plane geom.Plane, s lot.Settings) []lot.Road {
	roads := make([]lot.Road, 0, len(centerlines))
	for _, c := range centerlines {
		roads = append(roads, laneRoad(c, plane, s.AisleWidth, lot.RoadAisle))
	}
	return roads
}

// BuildAxialRoads clips each axial line to the inside of boundary and returns
// one axial road per clipped piece. Pieces shorter than the road width are
// dropped.
func BuildAxialRoads(lines []geom.Curve, boundary geom.Curve, s lot.Settings) []lot.Road {
	if len(lines) == 0 || geom.IsNil(boundary) {
		return nil
	}
	plane, ok := boundary.Plane()
	if !ok {
		return nil
	}
	ring := geom.LocalRing(plane, geom.Vertices(boundary))

	var roads []lot.Road
	for _, l := range lines {
		if geom.IsNil(l) {
			continue
		}
		for _, seg := range l.Segments() {
			a, b := plane.ToLocal(seg.PointAt(0)), plane.ToLocal(seg.PointAt(seg.Length()))
			for _, piece := range clipSegment(a, b, ring) {
				line := geom.Ln(plane.ToWorld(piece[0]), plane.ToWorld(piece[1]))
				if line.Length() < s.AxialRoadWidth {
					continue
				}
				roads = append(roads, laneRoad(line, plane, s.AxialRoadWidth, lot.RoadAxial))
			}
		}
	}
	return roads
}

func laneRoad(c geom.Line, plane geom.Plane, width float64, typ lot.RoadType) lot.Road {
	r := lot.Road{Centerline: c, Width: width, Type: typ}
	if width > 0 {
		if left := c.Offset(plane, width/2, OffsetTolerance); len(left) == 1 {
			r.LeftEdge = left[0]
		}
		if right := c.Offset(plane, -width/2, OffsetTolerance); len(right) == 1 {
			r.RightEdge = right[0]
		}
	}
	return r
}

// corridor returns the rectangle a straight road covers, in plane
// coordinates.
func corridor(r lot.Road, plane geom.Plane) orb.Ring {
	l, ok := r.Centerline.(geom.Line)
	if !ok || r.Width <= 0 {
		return nil
	}
	a, b := plane.ToLocal(l.P0), plane.ToLocal(l.P1)
	d := orb.Point{b[0] - a[0], b[1] - a[1]}
	length := math.Hypot(d[0], d[1])
	if length == 0 {
		return nil
	}
	h := r.Width / 2 / length
	off := orb.Point{-d[1] * h, d[0] * h}
	return orb.Ring{
		{a[0] + off[0], a[1] + off[1]},
		{a[0] - off[0], a[1] - off[1]},
		{b[0] - off[0], b[1] - off[1]},
		{b[0] + off[0], b[1] + off[1]},
		{a[0] + off[0], a[1] + off[1]},
	}
}

// clipSegment returns the pieces of segment ab that lie inside ring.
func clipSegment(a, b orb.Point, ring orb.Ring) [][2]orb.Point {
	ts := []float64{0, 1}
	for i := 0; i+1 < len(ring); i++ {
		if _, s, _, ok := geom.SegmentIntersection(a, b, ring[i], ring[i+1]); ok {
			ts = append(ts, s)
		}
	}
	sort.Float64s(ts)

	at := func(t float64) orb.Point {
		return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
	}
	var out [][2]orb.Point
	for i := 0; i+1 < len(ts); i++ {
		t0, t1 := ts[i], ts[i+1]
		if t1-t0 < 1e-9 {
			continue
		}
		if !geom.RingContains(ring, at((t0+t1)/2)) {
			continue
		}
		if n := len(out); n > 0 && out[n-1][1] == at(t0) {
			out[n-1][1] = at(t1)
			continue
		}
		out = append(out, [2]orb.Point{at(t0), at(t1)})
	}
	return out
}
