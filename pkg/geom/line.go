package geom

import "math"

// Line is a straight segment from P0 to P1.
type Line struct {
	P0 Point
	P1 Point
}

// Ln returns the segment from p0 to p1.
func Ln(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.P0.DistanceTo(l.P1)
}

// Direction returns the unit direction from P0 to P1.
func (l Line) Direction() Vec {
	return l.P1.Sub(l.P0).Unit()
}

// PointAt returns the point at arc length t from P0, clamped to the segment.
func (l Line) PointAt(t float64) Point {
	n := l.Length()
	if n == 0 {
		return l.P0
	}
	t = math.Max(0, math.Min(n, t))
	return l.P0.Lerp(l.P1, t/n)
}

// TangentAt returns the direction of the segment.
func (l Line) TangentAt(float64) Vec {
	return l.Direction()
}

// ClosestPoint returns the parameter of the point on the segment nearest p.
func (l Line) ClosestPoint(p Point) (float64, bool) {
	n := l.Length()
	if n == 0 {
		return 0, false
	}
	t := p.Sub(l.P0).Dot(l.Direction())
	return math.Max(0, math.Min(n, t)), true
}

// IsClosed always returns false.
func (l Line) IsClosed() bool {
	return false
}

// IsPlanar always returns true.
func (l Line) IsPlanar() bool {
	return true
}

// Plane returns a plane containing the segment whose normal is as close to
// world Z as possible.
func (l Line) Plane() (Plane, bool) {
	d := l.Direction()
	if d.IsZero() {
		return Plane{}, false
	}
	n := ZAxis.Sub(d.Mul(ZAxis.Dot(d)))
	if n.Length() < 1e-9 {
		n = perpendicular(d)
	}
	return NewPlane(l.P0, d, upNormal(n)), true
}

// Offset moves the segment sideways within plane. Positive distances move
// it to the left of P0→P1.
func (l Line) Offset(plane Plane, distance, tolerance float64) []Curve {
	d := l.Direction()
	if d.IsZero() {
		return nil
	}
	side := plane.ZAxis.Cross(d).Unit().Mul(distance)
	return []Curve{Line{P0: l.P0.Translate(side), P1: l.P1.Translate(side)}}
}

// DivideByLength returns parameters 0, segLen, 2·segLen, ... up to the end
// of the segment.
func (l Line) DivideByLength(segLen float64) []float64 {
	return divideOpen(l.Length(), segLen)
}

// Segments returns the line itself.
func (l Line) Segments() []Curve {
	return []Curve{l}
}

// Reverse returns the segment from P1 to P0.
func (l Line) Reverse() Line {
	return Line{P0: l.P1, P1: l.P0}
}

// divideOpen returns k·segLen for every k with k·segLen within the curve.
func divideOpen(length, segLen float64) []float64 {
	if segLen <= 0 || length <= 0 {
		return nil
	}
	n := int(math.Floor(length/segLen + 1e-9))
	ts := make([]float64, 0, n+1)
	for k := 0; k <= n; k++ {
		ts = append(ts, float64(k)*segLen)
	}
	return ts
}

// divideClosed returns k·segLen for every k short of wrapping back onto
// the start point.
func divideClosed(length, segLen float64) []float64 {
	if segLen <= 0 || length <= 0 {
		return nil
	}
	n := int(math.Floor(length/segLen + 1e-9))
	ts := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		ts = append(ts, float64(k)*segLen)
	}
	return ts
}
