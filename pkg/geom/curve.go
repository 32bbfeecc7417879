package geom

// Curve is an arc-length parameterized curve in 3D space.
//
// Parameters run from 0 to Length(). Closed curves wrap: any parameter is
// reduced modulo Length(). Open curves clamp parameters to [0, Length()].
type Curve interface {
	// Length returns the total arc length.
	Length() float64

	// PointAt returns the point at parameter t.
	PointAt(t float64) Point

	// TangentAt returns the unit tangent at parameter t. At a corner the
	// tangent of the segment starting there is returned.
	TangentAt(t float64) Vec

	// ClosestPoint returns the parameter of the curve point closest to p.
	// ok is false if the curve has no length.
	ClosestPoint(p Point) (t float64, ok bool)

	// IsClosed reports whether the curve forms a loop.
	IsClosed() bool

	// IsPlanar reports whether all of the curve lies within DefaultTolerance
	// of a single plane.
	IsPlanar() bool

	// Plane returns the best-fit plane of the curve with its normal oriented
	// up. ok is false if the curve is degenerate.
	Plane() (plane Plane, ok bool)

	// Offset offsets the curve within plane by distance. Positive distances
	// offset to the left of the direction of travel, as seen looking down
	// the plane normal. Closed curves may split into several loops; loops
	// that collapse are dropped. Offset returns nil if nothing survives.
	Offset(plane Plane, distance, tolerance float64) []Curve

	// DivideByLength returns the parameters of points spaced segLen apart
	// along the curve, starting at 0. For closed curves the start point is
	// not repeated at the end.
	DivideByLength(segLen float64) []float64

	// Segments explodes the curve into its straight segments, in order.
	Segments() []Curve
}

var (
	_ Curve = (*Polyline)(nil)
	_ Curve = Line{}
)

// IsNil reports whether c is nil or a nil *Polyline.
func IsNil(c Curve) bool {
	if c == nil {
		return true
	}
	if p, ok := c.(*Polyline); ok && p == nil {
		return true
	}
	return false
}

// Vertices returns the corner points of c in order. Closed curves do not
// repeat their first vertex.
func Vertices(c Curve) []Point {
	switch c := c.(type) {
	case *Polyline:
		if c == nil {
			return nil
		}
		return c.Vertices()
	case Line:
		return []Point{c.P0, c.P1}
	}
	if IsNil(c) {
		return nil
	}
	segs := c.Segments()
	pts := make([]Point, 0, len(segs)+1)
	for _, s := range segs {
		pts = append(pts, s.PointAt(0))
	}
	if !c.IsClosed() && len(segs) > 0 {
		last := segs[len(segs)-1]
		pts = append(pts, last.PointAt(last.Length()))
	}
	return pts
}

// ToPolyline converts c to a polyline through its vertices.
func ToPolyline(c Curve) *Polyline {
	if p, ok := c.(*Polyline); ok {
		return p
	}
	if IsNil(c) {
		return nil
	}
	if c.IsClosed() {
		return NewClosedPolyline(Vertices(c)...)
	}
	return NewPolyline(Vertices(c)...)
}

// Area returns the unsigned area enclosed by a closed curve, measured in the
// curve's plane. Open or degenerate curves have zero area.
func Area(c Curve) float64 {
	if IsNil(c) || !c.IsClosed() {
		return 0
	}
	plane, ok := c.Plane()
	if !ok {
		return 0
	}
	a := SignedArea(LocalRing(plane, Vertices(c)))
	if a < 0 {
		return -a
	}
	return a
}

// IsCounterClockwise reports whether a closed curve winds counter-clockwise
// around its up normal.
func IsCounterClockwise(c Curve) bool {
	if IsNil(c) || !c.IsClosed() {
		return false
	}
	plane, ok := c.Plane()
	if !ok {
		return false
	}
	return SignedArea(LocalRing(plane, Vertices(c))) > 0
}
