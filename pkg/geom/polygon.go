package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// LocalRing maps pts into plane coordinates and closes the ring.
func LocalRing(plane Plane, pts []Point) orb.Ring {
	if len(pts) == 0 {
		return nil
	}
	r := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		r = append(r, plane.ToLocal(p))
	}
	if r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// SignedArea returns the area of a closed ring, positive when the ring is
// counter-clockwise.
func SignedArea(r orb.Ring) float64 {
	if len(r) < 4 {
		return 0
	}
	a := math.Abs(planar.Area(r))
	switch r.Orientation() {
	case orb.CW:
		return -a
	case orb.CCW:
		return a
	}
	return 0
}

// RingContains reports whether p lies inside or on the closed ring r.
func RingContains(r orb.Ring, p orb.Point) bool {
	if len(r) < 4 {
		return false
	}
	return planar.RingContains(r, p)
}

// SimplifyRing removes vertices that deviate less than tol from the line
// through their neighbours. The ring stays closed.
func SimplifyRing(r orb.Ring, tol float64) orb.Ring {
	if len(r) < 5 {
		return r
	}
	s, ok := simplify.DouglasPeucker(tol).Simplify(orb.LineString(r.Clone())).(orb.LineString)
	if !ok || len(s) < 4 {
		return r
	}
	return orb.Ring(s)
}

// SegmentIntersection intersects segments ab and cd. It returns the crossing
// point and the parameters along each segment. Parallel segments never
// intersect.
func SegmentIntersection(a, b, c, d orb.Point) (x orb.Point, s, t float64, ok bool) {
	r := sub2(b, a)
	q := sub2(d, c)
	den := cross2(r, q)
	if math.Abs(den) <= 1e-9*math.Hypot(r[0], r[1])*math.Hypot(q[0], q[1]) {
		return orb.Point{}, 0, 0, false
	}
	ac := sub2(c, a)
	s = cross2(ac, q) / den
	t = cross2(ac, r) / den
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return orb.Point{}, s, t, false
	}
	return orb.Point{a[0] + s*r[0], a[1] + s*r[1]}, s, t, true
}

// LineIntersection intersects the infinite lines through a with direction u
// and through c with direction v.
func LineIntersection(a, u, c, v orb.Point) (orb.Point, bool) {
	den := cross2(u, v)
	if math.Abs(den) < 1e-12 {
		return orb.Point{}, false
	}
	s := cross2(sub2(c, a), v) / den
	return orb.Point{a[0] + s*u[0], a[1] + s*u[1]}, true
}

// SelfIntersects reports whether any two non-adjacent edges of the closed
// ring r touch or cross.
func SelfIntersects(r orb.Ring) bool {
	n := len(r) - 1
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if _, _, _, ok := SegmentIntersection(r[i], r[i+1], r[j], r[j+1]); ok {
				return true
			}
		}
	}
	return false
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b orb.Point) float64 {
	ab := sub2(b, a)
	l2 := dot2(ab, ab)
	if l2 == 0 {
		return planar.Distance(p, a)
	}
	t := dot2(sub2(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return planar.Distance(p, orb.Point{a[0] + t*ab[0], a[1] + t*ab[1]})
}

// RingDistance returns the distance from p to the nearest edge of r.
func RingDistance(p orb.Point, r orb.Ring) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(r); i++ {
		best = math.Min(best, SegmentDistance(p, r[i], r[i+1]))
	}
	return best
}

// RingInside reports whether the closed ring inner lies entirely inside or
// on outer: every vertex is contained and no edges cross.
func RingInside(inner, outer orb.Ring, tol float64) bool {
	for _, p := range inner {
		if !RingContains(outer, p) && RingDistance(p, outer) > tol {
			return false
		}
	}
	for i := 0; i+1 < len(inner); i++ {
		for j := 0; j+1 < len(outer); j++ {
			if properCross(inner[i], inner[i+1], outer[j], outer[j+1], tol) {
				return false
			}
		}
	}
	return true
}

// ConvexOverlap reports whether two convex rings overlap by more than tol.
// Rings that only share an edge or a corner do not overlap.
func ConvexOverlap(a, b orb.Ring, tol float64) bool {
	for _, r := range []orb.Ring{a, b} {
		for i := 0; i+1 < len(r); i++ {
			e := sub2(r[i+1], r[i])
			axis := orb.Point{-e[1], e[0]}
			l := math.Hypot(axis[0], axis[1])
			if l == 0 {
				continue
			}
			axis = orb.Point{axis[0] / l, axis[1] / l}
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA <= minB+tol || maxB <= minA+tol {
				return false
			}
		}
	}
	return true
}

// RingsOverlap reports whether two simple rings, convex or not, share
// interior area. Touching boundaries do not count.
func RingsOverlap(a, b orb.Ring, tol float64) bool {
	if !a.Bound().Intersects(b.Bound()) {
		return false
	}
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if properCross(a[i], a[i+1], b[j], b[j+1], tol) {
				return true
			}
		}
	}
	return strictlyInside(a, b, tol) || strictlyInside(b, a, tol)
}

// DiscOverlap reports whether the closed ring r comes closer than radius to
// center, or contains it.
func DiscOverlap(r orb.Ring, center orb.Point, radius, tol float64) bool {
	if RingContains(r, center) {
		return true
	}
	return RingDistance(center, r) < radius-tol
}

// strictlyInside reports whether some vertex of a lies inside b, away from
// b's edges.
func strictlyInside(a, b orb.Ring, tol float64) bool {
	for _, p := range a {
		if RingContains(b, p) && RingDistance(p, b) > tol {
			return true
		}
	}
	return false
}

// properCross reports whether ab and cd cross each other, with the
// endpoints of each segment more than tol to either side of the other.
func properCross(a, b, c, d orb.Point, tol float64) bool {
	return straddles(a, b, c, d, tol) && straddles(c, d, a, b, tol)
}

// straddles reports whether p and q lie on opposite sides of the line
// through ab, both farther than tol from it.
func straddles(a, b, p, q orb.Point, tol float64) bool {
	ab := sub2(b, a)
	l := math.Hypot(ab[0], ab[1])
	if l == 0 {
		return false
	}
	sp := cross2(ab, sub2(p, a)) / l
	sq := cross2(ab, sub2(q, a)) / l
	return (sp > tol && sq < -tol) || (sp < -tol && sq > tol)
}

func project(r orb.Ring, axis orb.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range r {
		d := dot2(p, axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func sub2(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func add2(a, b orb.Point) orb.Point {
	return orb.Point{a[0] + b[0], a[1] + b[1]}
}

func scale2(a orb.Point, s float64) orb.Point {
	return orb.Point{a[0] * s, a[1] * s}
}

func dot2(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func cross2(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func unit2(a orb.Point) orb.Point {
	l := math.Hypot(a[0], a[1])
	if l == 0 {
		return a
	}
	return orb.Point{a[0] / l, a[1] / l}
}

// LocalPath maps the vertices of c into plane coordinates. Closed curves
// repeat their first vertex at the end.
func LocalPath(plane Plane, c Curve) orb.LineString {
	pts := Vertices(c)
	if len(pts) == 0 {
		return nil
	}
	if c.IsClosed() {
		return orb.LineString(LocalRing(plane, pts))
	}
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = plane.ToLocal(p)
	}
	return ls
}

// PathDistance returns the smallest distance between two polylines, zero
// when they cross. Empty paths are infinitely far apart.
func PathDistance(a, b orb.LineString) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}
	if len(a) == 1 || len(b) == 1 {
		if len(a) > 1 {
			a, b = b, a
		}
		if len(b) == 1 {
			return planar.Distance(a[0], b[0])
		}
		best := math.Inf(1)
		for j := 0; j+1 < len(b); j++ {
			best = math.Min(best, SegmentDistance(a[0], b[j], b[j+1]))
		}
		return best
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if _, _, _, ok := SegmentIntersection(a[i], a[i+1], b[j], b[j+1]); ok {
				return 0
			}
			best = math.Min(best, math.Min(
				math.Min(SegmentDistance(a[i], b[j], b[j+1]), SegmentDistance(a[i+1], b[j], b[j+1])),
				math.Min(SegmentDistance(b[j], a[i], a[i+1]), SegmentDistance(b[j+1], a[i], a[i+1])),
			))
		}
	}
	return best
}
