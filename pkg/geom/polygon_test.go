package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func rect(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func TestSignedArea(t *testing.T) {
	ccw := rect(0, 0, 10, 20)
	if got := SignedArea(ccw); got != 200 {
		t.Errorf("SignedArea(ccw) = %v, want 200", got)
	}
	cw := ccw.Clone()
	cw.Reverse()
	if got := SignedArea(cw); got != -200 {
		t.Errorf("SignedArea(cw) = %v, want -200", got)
	}
	if got := SignedArea(orb.Ring{{0, 0}, {1, 1}}); got != 0 {
		t.Errorf("SignedArea(degenerate) = %v, want 0", got)
	}
}

func TestSelfIntersects(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
		want bool
	}{
		{"square", rect(0, 0, 10, 10), false},
		{"bowtie", orb.Ring{{0, 0}, {10, 10}, {10, 0}, {0, 10}, {0, 0}}, true},
		{"triangle", orb.Ring{{0, 0}, {10, 0}, {5, 5}, {0, 0}}, false},
		{"concave", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {5, 2}, {0, 10}, {0, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelfIntersects(tt.ring); got != tt.want {
				t.Errorf("SelfIntersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvexOverlap(t *testing.T) {
	base := rect(0, 0, 10, 10)
	tests := []struct {
		name  string
		other orb.Ring
		want  bool
	}{
		{"shared edge", rect(10, 0, 20, 10), false},
		{"shared corner", rect(10, 10, 20, 20), false},
		{"separate", rect(30, 30, 40, 40), false},
		{"overlapping", rect(5, 5, 15, 15), true},
		{"contained", rect(2, 2, 4, 4), true},
		{"sliver within tolerance", rect(9.995, 0, 20, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvexOverlap(base, tt.other, DefaultTolerance); got != tt.want {
				t.Errorf("ConvexOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRingsOverlap(t *testing.T) {
	l := orb.Ring{{0, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 20}, {0, 20}, {0, 0}}
	if RingsOverlap(l, rect(12, 12, 18, 18), DefaultTolerance) {
		t.Error("square in the notch of an L should not overlap it")
	}
	if !RingsOverlap(l, rect(5, 5, 15, 15), DefaultTolerance) {
		t.Error("square across the reflex corner should overlap")
	}
	if !RingsOverlap(rect(2, 2, 4, 4), l, DefaultTolerance) {
		t.Error("contained square should overlap")
	}
}

func TestRingInside(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	if !RingInside(rect(0, 0, 50, 50), outer, DefaultTolerance) {
		t.Error("ring touching the outer boundary should count as inside")
	}
	if RingInside(rect(90, 90, 110, 110), outer, DefaultTolerance) {
		t.Error("ring crossing the boundary is not inside")
	}
	notch := orb.Ring{{0, 0}, {100, 0}, {100, 100}, {60, 100}, {50, 40}, {40, 100}, {0, 100}, {0, 0}}
	if RingInside(rect(30, 60, 70, 80), notch, DefaultTolerance) {
		t.Error("ring spanning a notch is not inside even with all corners contained")
	}
}

func TestDiscOverlap(t *testing.T) {
	r := rect(0, 0, 10, 10)
	if !DiscOverlap(r, orb.Point{5, 5}, 1, DefaultTolerance) {
		t.Error("disc centred inside the ring overlaps")
	}
	if !DiscOverlap(r, orb.Point{15, 5}, 6, DefaultTolerance) {
		t.Error("disc reaching the ring overlaps")
	}
	if DiscOverlap(r, orb.Point{15, 5}, 5, DefaultTolerance) {
		t.Error("disc tangent to the ring does not overlap")
	}
}

func TestSimplifyRing(t *testing.T) {
	r := orb.Ring{{0, 0}, {5, 0.001}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	got := SimplifyRing(r, DefaultTolerance)
	if len(got) != 5 {
		t.Fatalf("SimplifyRing() kept %d points, want 5", len(got))
	}
	if math.Abs(SignedArea(got)-100) > 1e-9 {
		t.Errorf("SignedArea() = %v, want 100", SignedArea(got))
	}
}

func TestSegmentIntersection(t *testing.T) {
	x, s, u, ok := SegmentIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, -5}, orb.Point{5, 5})
	if !ok {
		t.Fatal("SegmentIntersection() ok = false")
	}
	if x != (orb.Point{5, 0}) || s != 0.5 || u != 0.5 {
		t.Errorf("SegmentIntersection() = %v, %v, %v", x, s, u)
	}
	if _, _, _, ok := SegmentIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 1}, orb.Point{10, 1}); ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestPathDistance(t *testing.T) {
	horiz := orb.LineString{{0, 0}, {10, 0}}
	tests := []struct {
		name string
		b    orb.LineString
		want float64
	}{
		{"parallel", orb.LineString{{0, 5}, {10, 5}}, 5},
		{"crossing", orb.LineString{{5, -5}, {5, 5}}, 0},
		{"end gap", orb.LineString{{13, 4}, {20, 4}}, 5},
		{"point", orb.LineString{{5, 3}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathDistance(horiz, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PathDistance() = %v, want %v", got, tt.want)
			}
			if got := PathDistance(tt.b, horiz); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PathDistance() reversed = %v, want %v", got, tt.want)
			}
		})
	}
	if !math.IsInf(PathDistance(nil, horiz), 1) {
		t.Error("empty path should be infinitely far")
	}
}

func TestLocalPath(t *testing.T) {
	sq := NewClosedPolyline(Pt(0, 0, 0), Pt(10, 0, 0), Pt(10, 10, 0), Pt(0, 10, 0))
	if got := LocalPath(WorldXY, sq); len(got) != 5 || got[0] != got[4] {
		t.Errorf("LocalPath(closed) = %v, want a closed path of 5 points", got)
	}
	ln := Ln(Pt(0, 0, 0), Pt(3, 4, 0))
	if got := LocalPath(WorldXY, ln); len(got) != 2 || got[1] != (orb.Point{3, 4}) {
		t.Errorf("LocalPath(line) = %v", got)
	}
}
