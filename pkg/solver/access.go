package solver

import (
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// ResolveAccessPoints snaps each access point onto boundary and points it
// into the lot. The input slice is not modified; a new slice is returned.
//
// Location becomes the closest boundary point and Direction the unit inward
// normal there. Resolving already-resolved points against the same
// boundary gives the same result. Empty input or a null boundary returns nil.
func ResolveAccessPoints(points []lot.AccessPoint, boundary geom.Curve) []lot.AccessPoint {
	if len(points) == 0 || geom.IsNil(boundary) {
		return nil
	}
	out := make([]lot.AccessPoint, len(points))
	copy(out, points)

	b := NormalizeWinding(boundary)
	plane, ok := b.Plane()
	if !ok {
		return out
	}
	for i := range out {
		t, ok := b.ClosestPoint(out[i].Location)
		if !ok {
			continue
		}
		out[i].Location = b.PointAt(t)
		out[i].Direction = InwardNormal(b, plane, t)
		out[i].Resolved = true
	}
	return out
}

// InwardNormal returns the unit normal at t pointing to the left of travel
// within plane, which is the inside of a counter-clockwise loop.
func InwardNormal(c geom.Curve, plane geom.Plane, t float64) geom.Vec {
	return plane.ZAxis.Cross(c.TangentAt(t)).Unit()
}
