package geom

import (
	"fmt"
	"math"
)

// DefaultTolerance is the absolute distance below which two points are
// considered coincident. Units are centimetres.
const DefaultTolerance = 0.01

// Point is a location in 3D space.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Vec is a displacement in 3D space.
type Vec struct {
	X float64
	Y float64
	Z float64
}

// Common axis vectors.
var (
	XAxis = Vec{1, 0, 0}
	YAxis = Vec{0, 1, 0}
	ZAxis = Vec{0, 0, 1}
)

// Pt returns the point (x, y, z).
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// V returns the vector ⟨x, y, z⟩.
func V(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vec {
	return Vec{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Translate returns p moved by v.
func (p Point) Translate(v Vec) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return p.Sub(o).Length()
}

// Lerp linearly interpolates between p and o.
func (p Point) Lerp(o Point, t float64) Point {
	return p.Translate(o.Sub(p).Mul(t))
}

// EqualWithin reports whether p and o are closer than tol.
func (p Point) EqualWithin(o Point, tol float64) bool {
	return p.DistanceTo(o) <= tol
}

// Vec returns the position vector of p.
func (p Point) Vec() Vec {
	return Vec{p.X, p.Y, p.Z}
}

func (v Vec) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul scales v by s.
func (v Vec) Mul(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the magnitude of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns a vector of length 1 with the direction of v.
// The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// IsZero reports whether v is the zero vector.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsUnit reports whether v has length 1 within a small tolerance.
func (v Vec) IsUnit() bool {
	return math.Abs(v.Length()-1) < 1e-9
}

// EqualWithin reports whether v and o differ by less than tol in length.
func (v Vec) EqualWithin(o Vec, tol float64) bool {
	return v.Sub(o).Length() <= tol
}

// Rotate rotates v by angle radians around axis, following the right-hand rule.
func (v Vec) Rotate(axis Vec, angle float64) Vec {
	k := axis.Unit()
	sin, cos := math.Sincos(angle)
	// Rodrigues' rotation formula.
	return v.Mul(cos).Add(k.Cross(v).Mul(sin)).Add(k.Mul(k.Dot(v) * (1 - cos)))
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
