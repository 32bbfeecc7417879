// Package geom provides the planar curve primitives used by the layout solver.
//
// The solver only needs a small slice of what a CAD kernel offers: arc-length
// parameterized curves, closest-point queries, planar offsets and arc-length
// division. This package implements those operations for polyline geometry,
// which covers every boundary and guide curve the solver produces.
//
// # Curves
//
// [Curve] is the abstraction the solver programs against. Two implementations
// are provided:
//
//   - [Polyline]: an open or closed chain of straight segments
//   - [Line]: a single straight segment
//
// Curves are parameterized by arc length: t = 0 is the start point and
// t = Length() is the end point. Closed curves wrap, so t = Length() and
// t = 0 address the same point.
//
// # Planes
//
// Boundaries may live in any plane, not just world XY. A [Plane] maps world
// points to plane-local 2D coordinates (as [orb.Point]) and back, so that all
// area, containment and offset computations run in two dimensions.
//
//	pl := geom.NewClosedPolyline(
//	    geom.Pt(0, 0, 0), geom.Pt(2000, 0, 0),
//	    geom.Pt(2000, 2000, 0), geom.Pt(0, 2000, 0),
//	)
//	plane, _ := pl.Plane()
//	loops := pl.Offset(plane, 50, geom.DefaultTolerance)
//
// # Orientation
//
// The up direction of a curve is its plane normal, flipped where necessary so
// that it never points below the world XY plane. A closed curve is
// counter-clockwise when it turns left around that normal; the inward side
// of a counter-clockwise curve is up × tangent.
//
// [orb.Point]: https://pkg.go.dev/github.com/paulmach/orb#Point
package geom
