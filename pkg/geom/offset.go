package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// offsetClosed offsets a closed ring of plane coordinates to the left of its
// direction of travel. The raw mitred offset is split at its
// self-intersections and only the loops that keep the input's orientation
// and stay a full distance away from the input survive.
func offsetClosed(pts []orb.Point, d, tol float64) [][]orb.Point {
	pts = removeCollinear(pts, tol)
	if len(pts) < 3 {
		return nil
	}
	src := closeRing(pts)
	orient := math.Copysign(1, SignedArea(src))
	if SignedArea(src) == 0 {
		return nil
	}

	n := len(pts)
	dirs := make([]orb.Point, n)
	for i := range pts {
		dirs[i] = unit2(sub2(pts[(i+1)%n], pts[i]))
	}
	raw := make([]orb.Point, n)
	for j := range pts {
		prev := (j - 1 + n) % n
		a := add2(pts[prev], scale2(leftNormal(dirs[prev]), d))
		b := add2(pts[j], scale2(leftNormal(dirs[j]), d))
		if x, ok := LineIntersection(a, dirs[prev], b, dirs[j]); ok {
			raw[j] = x
		} else {
			raw[j] = b
		}
	}

	inward := d*orient > 0
	var out [][]orb.Point
	for _, loop := range splitLoops(raw) {
		loop = removeCollinear(loop, tol)
		if len(loop) < 3 {
			continue
		}
		ring := closeRing(loop)
		area := SignedArea(ring)
		if math.Abs(area) <= tol*tol || math.Copysign(1, area) != orient {
			continue
		}
		if !clearOf(loop, src, math.Abs(d), tol) {
			continue
		}
		if RingContains(src, loop[0]) != inward {
			continue
		}
		out = append(out, loop)
	}
	return out
}

// offsetOpen offsets an open chain to the left, mitring interior corners.
func offsetOpen(pts []orb.Point, d, tol float64) []orb.Point {
	pts = dedupe2(pts, tol)
	n := len(pts)
	if n < 2 {
		return nil
	}
	dirs := make([]orb.Point, n-1)
	for i := 0; i+1 < n; i++ {
		dirs[i] = unit2(sub2(pts[i+1], pts[i]))
	}
	out := make([]orb.Point, n)
	out[0] = add2(pts[0], scale2(leftNormal(dirs[0]), d))
	out[n-1] = add2(pts[n-1], scale2(leftNormal(dirs[n-2]), d))
	for j := 1; j < n-1; j++ {
		a := add2(pts[j-1], scale2(leftNormal(dirs[j-1]), d))
		b := add2(pts[j], scale2(leftNormal(dirs[j]), d))
		if x, ok := LineIntersection(a, dirs[j-1], b, dirs[j]); ok {
			out[j] = x
		} else {
			out[j] = b
		}
	}
	return out
}

// splitLoops cuts a closed chain at its self-intersections until every
// piece is simple. Pieces are returned in discovery order.
func splitLoops(q []orb.Point) [][]orb.Point {
	var out [][]orb.Point
	stack := [][]orb.Point{q}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, x, found := firstCrossing(cur)
		if !found {
			out = append(out, cur)
			continue
		}
		a := make([]orb.Point, 0, j-i+1)
		a = append(a, x)
		a = append(a, cur[i+1:j+1]...)

		b := make([]orb.Point, 0, len(cur)-(j-i)+1)
		b = append(b, cur[:i+1]...)
		b = append(b, x)
		b = append(b, cur[j+1:]...)

		stack = append(stack, b, a)
	}
	return out
}

// firstCrossing finds the first pair of non-adjacent edges of the closed
// chain q that intersect.
func firstCrossing(q []orb.Point) (int, int, orb.Point, bool) {
	n := len(q)
	if n < 4 {
		return 0, 0, orb.Point{}, false
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if x, _, _, ok := SegmentIntersection(q[i], q[i+1], q[j], q[(j+1)%n]); ok {
				return i, j, x, true
			}
		}
	}
	return 0, 0, orb.Point{}, false
}

// clearOf reports whether every vertex of loop is at least d from src.
func clearOf(loop []orb.Point, src orb.Ring, d, tol float64) bool {
	for _, p := range loop {
		if RingDistance(p, src) < d-tol {
			return false
		}
	}
	return true
}

// removeCollinear drops duplicate vertices and vertices where the chain
// continues straight, treating pts as a closed ring.
func removeCollinear(pts []orb.Point, tol float64) []orb.Point {
	pts = dedupe2(pts, tol)
	if len(pts) > 1 && planarDist(pts[0], pts[len(pts)-1]) <= tol {
		pts = pts[:len(pts)-1]
	}
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) >= 3; i++ {
			prev := pts[(i-1+len(pts))%len(pts)]
			next := pts[(i+1)%len(pts)]
			a, b := sub2(pts[i], prev), sub2(next, pts[i])
			la, lb := math.Hypot(a[0], a[1]), math.Hypot(b[0], b[1])
			if math.Abs(cross2(a, b)) <= tol*math.Max(la, lb) && dot2(a, b) > 0 {
				pts = append(pts[:i:i], pts[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return pts
}

func dedupe2(pts []orb.Point, tol float64) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && planarDist(out[len(out)-1], p) <= tol {
			continue
		}
		out = append(out, p)
	}
	return out
}

func closeRing(pts []orb.Point) orb.Ring {
	r := make(orb.Ring, 0, len(pts)+1)
	r = append(r, pts...)
	return append(r, pts[0])
}

func toWorld(plane Plane, pts []orb.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = plane.ToWorld(p)
	}
	return out
}

func leftNormal(u orb.Point) orb.Point {
	return orb.Point{-u[1], u[0]}
}

func planarDist(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
