package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Plane is an oriented frame: an origin and three orthonormal axes.
// ZAxis is the plane normal; XAxis and YAxis span the plane.
type Plane struct {
	Origin Point
	XAxis  Vec
	YAxis  Vec
	ZAxis  Vec
}

// WorldXY is the world XY plane through the origin.
var WorldXY = Plane{XAxis: XAxis, YAxis: YAxis, ZAxis: ZAxis}

// NewPlane builds a right-handed frame at origin with the given x direction and
// normal. The x direction is projected into the plane before normalization.
// If x is parallel to normal, an arbitrary in-plane direction is used.
func NewPlane(origin Point, x, normal Vec) Plane {
	z := normal.Unit()
	if z.IsZero() {
		z = ZAxis
	}
	x = x.Sub(z.Mul(x.Dot(z)))
	if x.Length() < 1e-12 {
		x = perpendicular(z)
	}
	x = x.Unit()
	return Plane{
		Origin: origin,
		XAxis:  x,
		YAxis:  z.Cross(x),
		ZAxis:  z,
	}
}

// PlaneFromNormal returns the plane with the given normal that passes through
// through, with its origin at the projection of the world origin and its x axis
// as close to world X as possible. For horizontal planes this makes local
// coordinates equal to world X and Y.
func PlaneFromNormal(through Point, normal Vec) Plane {
	z := normal.Unit()
	if z.IsZero() {
		z = ZAxis
	}
	origin := Point{}.Translate(z.Mul(through.Vec().Dot(z)))
	x := XAxis
	if math.Abs(z.Dot(x)) > 1-1e-9 {
		x = YAxis
	}
	return NewPlane(origin, x, z)
}

// Normal returns the plane normal.
func (p Plane) Normal() Vec {
	return p.ZAxis
}

// ToLocal returns the plane coordinates of w, discarding the out-of-plane
// component.
func (p Plane) ToLocal(w Point) orb.Point {
	d := w.Sub(p.Origin)
	return orb.Point{d.Dot(p.XAxis), d.Dot(p.YAxis)}
}

// ToWorld maps plane coordinates back to world space.
func (p Plane) ToWorld(q orb.Point) Point {
	return p.Origin.Translate(p.XAxis.Mul(q[0])).Translate(p.YAxis.Mul(q[1]))
}

// VecToLocal returns the in-plane components of v.
func (p Plane) VecToLocal(v Vec) orb.Point {
	return orb.Point{v.Dot(p.XAxis), v.Dot(p.YAxis)}
}

// VecToWorld maps an in-plane direction back to world space.
func (p Plane) VecToWorld(q orb.Point) Vec {
	return p.XAxis.Mul(q[0]).Add(p.YAxis.Mul(q[1]))
}

// DistanceTo returns the signed distance from the plane to w along the normal.
func (p Plane) DistanceTo(w Point) float64 {
	return w.Sub(p.Origin).Dot(p.ZAxis)
}

// perpendicular returns some unit vector perpendicular to v.
func perpendicular(v Vec) Vec {
	if math.Abs(v.X) < 0.9 {
		return XAxis.Cross(v).Unit()
	}
	return YAxis.Cross(v).Unit()
}

// upNormal orients n so that it does not point below the world XY plane.
// Vertical normals are left unchanged.
func upNormal(n Vec) Vec {
	if n.Z < -1e-12 {
		return n.Neg()
	}
	return n
}
