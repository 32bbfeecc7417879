package geom

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// Polyline is a chain of straight segments through a list of vertices.
//
// A closed polyline stores each vertex once; the closing segment from the
// last vertex back to the first is implicit.
type Polyline struct {
	pts    []Point
	closed bool
	cum    []float64 // arc length at the start of each segment, plus the total
}

// NewPolyline builds a polyline through pts. If the last point repeats the
// first and there are at least three distinct vertices, the polyline is
// closed and the duplicate is dropped.
func NewPolyline(pts ...Point) *Polyline {
	pts = dedupe(pts)
	closed := false
	if len(pts) >= 4 && pts[0].EqualWithin(pts[len(pts)-1], DefaultTolerance) {
		pts = pts[:len(pts)-1]
		closed = true
	}
	return newPolyline(pts, closed)
}

// NewClosedPolyline builds a closed polyline through pts. A trailing copy of
// the first point is ignored.
func NewClosedPolyline(pts ...Point) *Polyline {
	pts = dedupe(pts)
	if len(pts) >= 2 && pts[0].EqualWithin(pts[len(pts)-1], DefaultTolerance) {
		pts = pts[:len(pts)-1]
	}
	return newPolyline(pts, len(pts) >= 3)
}

func newPolyline(pts []Point, closed bool) *Polyline {
	p := &Polyline{pts: pts, closed: closed}
	n := p.segmentCount()
	p.cum = make([]float64, n+1)
	for i := 0; i < n; i++ {
		a, b := p.segment(i)
		p.cum[i+1] = p.cum[i] + a.DistanceTo(b)
	}
	return p
}

// dedupe drops consecutive points closer than DefaultTolerance.
func dedupe(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].EqualWithin(p, DefaultTolerance) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Vertices returns a copy of the polyline's vertices.
func (p *Polyline) Vertices() []Point {
	return append([]Point(nil), p.pts...)
}

// PointCount returns the number of stored vertices.
func (p *Polyline) PointCount() int {
	return len(p.pts)
}

func (p *Polyline) segmentCount() int {
	if len(p.pts) < 2 {
		return 0
	}
	if p.closed {
		return len(p.pts)
	}
	return len(p.pts) - 1
}

func (p *Polyline) segment(i int) (Point, Point) {
	return p.pts[i], p.pts[(i+1)%len(p.pts)]
}

// Length returns the total arc length.
func (p *Polyline) Length() float64 {
	return p.cum[len(p.cum)-1]
}

// normalize wraps or clamps t into [0, Length()).
func (p *Polyline) normalize(t float64) float64 {
	l := p.Length()
	if l == 0 {
		return 0
	}
	if p.closed {
		t = math.Mod(t, l)
		if t < 0 {
			t += l
		}
		if l-t < 1e-9 {
			t = 0
		}
		return t
	}
	return math.Max(0, math.Min(l, t))
}

// locate returns the segment containing t and the distance into it.
// At a vertex the segment starting there is chosen.
func (p *Polyline) locate(t float64) (int, float64) {
	n := p.segmentCount()
	t = p.normalize(t)
	i := sort.Search(n, func(i int) bool { return p.cum[i+1] > t })
	if i >= n {
		i = n - 1
	}
	return i, t - p.cum[i]
}

// PointAt returns the point at parameter t.
func (p *Polyline) PointAt(t float64) Point {
	if p.segmentCount() == 0 {
		if len(p.pts) == 1 {
			return p.pts[0]
		}
		return Point{}
	}
	i, d := p.locate(t)
	a, b := p.segment(i)
	l := p.cum[i+1] - p.cum[i]
	if l == 0 {
		return a
	}
	return a.Lerp(b, d/l)
}

// TangentAt returns the unit direction of the segment containing t.
func (p *Polyline) TangentAt(t float64) Vec {
	if p.segmentCount() == 0 {
		return Vec{}
	}
	i, _ := p.locate(t)
	a, b := p.segment(i)
	return b.Sub(a).Unit()
}

// ClosestPoint returns the parameter of the point nearest to q. Ties go to
// the earliest segment.
func (p *Polyline) ClosestPoint(q Point) (float64, bool) {
	n := p.segmentCount()
	if n == 0 || p.Length() == 0 {
		return 0, false
	}
	best, bestT := math.Inf(1), 0.0
	for i := 0; i < n; i++ {
		a, b := p.segment(i)
		l := p.cum[i+1] - p.cum[i]
		if l == 0 {
			continue
		}
		d := b.Sub(a).Mul(1 / l)
		s := math.Max(0, math.Min(l, q.Sub(a).Dot(d)))
		if dist := q.DistanceTo(a.Translate(d.Mul(s))); dist < best-1e-12 {
			best, bestT = dist, p.cum[i]+s
		}
	}
	return p.normalize(bestT), true
}

// IsClosed reports whether the polyline forms a loop.
func (p *Polyline) IsClosed() bool {
	return p.closed
}

// IsPlanar reports whether every vertex lies within DefaultTolerance of the
// best-fit plane.
func (p *Polyline) IsPlanar() bool {
	plane, ok := p.Plane()
	if !ok {
		return len(p.pts) > 0
	}
	for _, v := range p.pts {
		if math.Abs(plane.DistanceTo(v)) > DefaultTolerance {
			return false
		}
	}
	return true
}

// Plane returns the best-fit plane through the vertices. The normal is
// computed with Newell's method and oriented up; collinear polylines get the
// plane through them that is closest to horizontal.
func (p *Polyline) Plane() (Plane, bool) {
	if len(p.pts) < 2 {
		return Plane{}, false
	}
	var n Vec
	var c Vec
	for i := range p.pts {
		a, b := p.pts[i], p.pts[(i+1)%len(p.pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
		c = c.Add(a.Vec())
	}
	centroid := Point{}.Translate(c.Mul(1 / float64(len(p.pts))))
	if n.Length() < 1e-9 {
		l := Line{P0: p.pts[0], P1: p.pts[len(p.pts)-1]}
		lp, ok := l.Plane()
		if !ok {
			return Plane{}, false
		}
		return PlaneFromNormal(centroid, lp.ZAxis), true
	}
	return PlaneFromNormal(centroid, upNormal(n)), true
}

// Offset offsets the polyline within plane. See [Curve].
func (p *Polyline) Offset(plane Plane, distance, tolerance float64) []Curve {
	if p.segmentCount() == 0 {
		return nil
	}
	if distance == 0 {
		return []Curve{p}
	}
	local := make([]orb.Point, len(p.pts))
	for i, v := range p.pts {
		local[i] = plane.ToLocal(v)
	}
	var out []Curve
	if p.closed {
		for _, loop := range offsetClosed(local, distance, tolerance) {
			out = append(out, NewClosedPolyline(toWorld(plane, loop)...))
		}
		return out
	}
	if pts := offsetOpen(local, distance, tolerance); len(pts) >= 2 {
		out = append(out, NewPolyline(toWorld(plane, pts)...))
	}
	return out
}

// DivideByLength returns parameters spaced segLen apart. See [Curve].
func (p *Polyline) DivideByLength(segLen float64) []float64 {
	if p.closed {
		return divideClosed(p.Length(), segLen)
	}
	return divideOpen(p.Length(), segLen)
}

// Segments returns the polyline's edges as lines, in order.
func (p *Polyline) Segments() []Curve {
	n := p.segmentCount()
	segs := make([]Curve, 0, n)
	for i := 0; i < n; i++ {
		a, b := p.segment(i)
		segs = append(segs, Line{P0: a, P1: b})
	}
	return segs
}

// Reverse returns the polyline traversed in the opposite direction. Closed
// polylines keep their start vertex.
func (p *Polyline) Reverse() *Polyline {
	n := len(p.pts)
	rev := make([]Point, n)
	if p.closed && n > 0 {
		rev[0] = p.pts[0]
		for i := 1; i < n; i++ {
			rev[i] = p.pts[n-i]
		}
	} else {
		for i := range p.pts {
			rev[i] = p.pts[n-1-i]
		}
	}
	return newPolyline(rev, p.closed)
}
