package solver

import (
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
)

// OffsetTolerance is the tolerance handed to the offset engine.
const OffsetTolerance = 0.01

// Validation messages returned by [Validate].
const (
	MsgNull           = "Boundary is null."
	MsgNotClosed      = "Boundary must be a closed curve."
	MsgNotPlanar      = "Boundary must be planar."
	MsgNotFinite      = "Boundary coordinates must be finite numbers."
	MsgSelfIntersects = "Boundary must not self-intersect."
	MsgNoArea         = "Boundary must enclose a non-zero area."
	MsgValid          = "Valid."
)

// Validate checks that boundary can delimit a lot. It reports the first
// failing check with a user-facing message, or MsgValid.
func Validate(boundary geom.Curve) (bool, string) {
	if geom.IsNil(boundary) {
		return false, MsgNull
	}
	if !boundary.IsClosed() {
		return false, MsgNotClosed
	}
	for _, p := range geom.Vertices(boundary) {
		if errors.ValidateFinite("boundary", p.X, p.Y, p.Z) != nil {
			return false, MsgNotFinite
		}
	}
	if !boundary.IsPlanar() {
		return false, MsgNotPlanar
	}
	plane, ok := boundary.Plane()
	if !ok {
		return false, MsgNoArea
	}
	ring := geom.LocalRing(plane, geom.Vertices(boundary))
	if geom.SelfIntersects(ring) {
		return false, MsgSelfIntersects
	}
	if a := geom.SignedArea(ring); a*a <= OffsetTolerance*OffsetTolerance {
		return false, MsgNoArea
	}
	return true, MsgValid
}

// NormalizeWinding returns boundary oriented counter-clockwise around its
// up normal. Open, degenerate or already counter-clockwise curves are
// returned unchanged.
func NormalizeWinding(boundary geom.Curve) geom.Curve {
	if geom.IsNil(boundary) || !boundary.IsClosed() {
		return boundary
	}
	if _, ok := boundary.Plane(); !ok || geom.IsCounterClockwise(boundary) {
		return boundary
	}
	return geom.ToPolyline(boundary).Reverse()
}

// OffsetLoops offsets a closed boundary inward by distance and returns every
// loop the offset engine produced, in engine order. Negative distances
// offset outward. A distance of zero returns the boundary itself.
func OffsetLoops(boundary geom.Curve, distance float64) ([]geom.Curve, error) {
	if geom.IsNil(boundary) {
		return nil, errors.New(errors.ErrCodeOffsetFailed, "cannot offset a null boundary")
	}
	if distance == 0 {
		return []geom.Curve{boundary}, nil
	}
	if !boundary.IsClosed() {
		return nil, errors.New(errors.ErrCodeOffsetFailed, "cannot offset an open boundary inward")
	}
	plane, ok := boundary.Plane()
	if !ok {
		return nil, errors.New(errors.ErrCodeOffsetFailed, "boundary has no plane")
	}
	loops := NormalizeWinding(boundary).Offset(plane, distance, OffsetTolerance)
	if len(loops) == 0 {
		return nil, errors.New(errors.ErrCodeOffsetFailed, "offset of %g collapses the boundary", distance)
	}
	return loops, nil
}

// Offset returns the inward offset of boundary at distance. When the offset
// splits into several loops the one enclosing the largest area is returned;
// equal areas keep the engine's order. A collapsed offset returns nil and an
// OFFSET_FAILED error, and callers should fall back to the boundary.
func Offset(boundary geom.Curve, distance float64) (geom.Curve, error) {
	loops, err := OffsetLoops(boundary, distance)
	if err != nil {
		return nil, err
	}
	return Largest(loops), nil
}

// Largest returns the curve enclosing the largest area. Ties go to the
// earliest curve.
func Largest(curves []geom.Curve) geom.Curve {
	var best geom.Curve
	bestArea := -1.0
	for _, c := range curves {
		if a := geom.Area(c); a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}

// UsableEdges returns the straight edges of boundary in boundary order.
func UsableEdges(boundary geom.Curve) []geom.Curve {
	if geom.IsNil(boundary) {
		return nil
	}
	return boundary.Segments()
}
