package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

func TestPlaceAlongCurveNilGuide(t *testing.T) {
	var nilPolyline *geom.Polyline
	for _, g := range []geom.Curve{nil, nilPolyline} {
		spots, next, err := PlaceAlongCurve(g, lot.DefaultSettings(), true, 7)
		require.NoError(t, err)
		assert.Empty(t, spots)
		assert.Equal(t, 7, next)
	}
}

func TestPlaceAlongCurveSquare(t *testing.T) {
	spots, next, err := PlaceAlongCurve(square(2000), lot.DefaultSettings(), true, 0)
	require.NoError(t, err)
	require.Len(t, spots, 32)
	assert.Equal(t, 32, next)

	for i, s := range spots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, lot.SpotStandard, s.Type)
		assert.InDelta(t, 250*500, geom.Area(s.Boundary), 1e-6)
		assert.InDelta(t, 2*(250+500), s.Boundary.Length(), 1e-6)
		assert.True(t, s.BasePlane.ZAxis.EqualWithin(geom.ZAxis, 1e-12))
	}

	want := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(250, 0, 0), geom.Pt(250, 500, 0), geom.Pt(0, 500, 0)}
	assert.Equal(t, want, spots[0].Boundary.Vertices())

	// The first spot on the right edge starts at the corner and extends inward.
	want = []geom.Point{geom.Pt(2000, 0, 0), geom.Pt(2000, 250, 0), geom.Pt(1500, 250, 0), geom.Pt(1500, 0, 0)}
	assert.Equal(t, want, spots[8].Boundary.Vertices())
}

func TestPlaceAlongCurveEdgeTangent(t *testing.T) {
	b := square(2000)
	spots, _, err := PlaceAlongCurve(b, lot.DefaultSettings(), true, 0)
	require.NoError(t, err)
	for _, s := range spots {
		front := geom.Ln(s.Boundary.PointAt(0), s.Boundary.PointAt(250))
		tb, _ := b.ClosestPoint(front.P0)
		assert.True(t, b.PointAt(tb).EqualWithin(front.P0, 1e-9), "spot %d does not start on the guide", s.Index)
		assert.True(t, front.Direction().EqualWithin(s.BasePlane.XAxis, 1e-9), "spot %d frontage is not tangent", s.Index)
	}
}

func TestPlaceAlongCurveClockwiseGuide(t *testing.T) {
	spots, _, err := PlaceAlongCurve(square(2000).Reverse(), lot.DefaultSettings(), true, 0)
	require.NoError(t, err)
	require.Len(t, spots, 32)
	ring := geom.LocalRing(geom.WorldXY, square(2000).Vertices())
	for _, s := range spots {
		c := s.BasePlane.Origin.Translate(s.BasePlane.YAxis.Mul(10)).Translate(s.BasePlane.XAxis.Mul(10))
		assert.True(t, geom.RingContains(ring, geom.WorldXY.ToLocal(c)), "spot %d faces outward", s.Index)
	}
}

func TestPlaceAlongCurveInnerSide(t *testing.T) {
	spots, _, err := PlaceAlongCurve(square(2000), lot.DefaultSettings(), false, 0)
	require.NoError(t, err)
	want := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(250, 0, 0), geom.Pt(250, -500, 0), geom.Pt(0, -500, 0)}
	assert.Equal(t, want, spots[0].Boundary.Vertices())
}

func TestPlaceAlongCurveIndexThreading(t *testing.T) {
	s := lot.DefaultSettings()
	first, next, err := PlaceAlongCurve(square(1000), s, true, 0)
	require.NoError(t, err)
	second, next2, err := PlaceAlongCurve(square(500), s, true, next)
	require.NoError(t, err)

	assert.Equal(t, 16, next)
	assert.Equal(t, 24, next2)
	seen := map[int]bool{}
	for _, sp := range append(first, second...) {
		assert.False(t, seen[sp.Index], "duplicate index %d", sp.Index)
		seen[sp.Index] = true
	}
}

func TestPlaceAlongCurveAngled(t *testing.T) {
	s := settingsWith(func(s *lot.Settings) { s.SpotAngle = 45 })
	spacing, err := s.Spacing()
	require.NoError(t, err)

	spots, _, err := PlaceAlongCurve(square(2000), s, true, 0)
	require.NoError(t, err)
	require.Len(t, spots, int(math.Floor(8000/spacing)))

	first := spots[0]
	assert.InDelta(t, 250*500, geom.Area(first.Boundary), 1e-6, "a stall keeps its width times length")
	assert.Equal(t, 45.0, first.Angle)
	assert.Equal(t, 250.0, first.Width)

	v := first.Boundary.Vertices()
	assert.InDelta(t, spacing, v[0].DistanceTo(v[1]), 1e-9)
	assert.InDelta(t, 500, v[1].DistanceTo(v[2]), 1e-9)
	assert.InDelta(t, 500*math.Sin(math.Pi/4), v[3].Y, 1e-9)
}

func TestPlaceAlongCurveDegenerateAngle(t *testing.T) {
	for _, a := range []float64{0, 0.2, 180, 200} {
		s := settingsWith(func(s *lot.Settings) { s.SpotAngle = a })
		spots, next, err := PlaceAlongCurve(square(2000), s, true, 3)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidSettings), "angle %v: err = %v", a, err)
		assert.Nil(t, spots)
		assert.Equal(t, 3, next)
	}
}

func TestPlaceAlongOpenLine(t *testing.T) {
	spots, next, err := PlaceAlongCurve(geom.Ln(geom.Pt(0, 0, 0), geom.Pt(1000, 0, 0)), lot.DefaultSettings(), true, 0)
	require.NoError(t, err)
	assert.Len(t, spots, 5)
	assert.Equal(t, 5, next)
	assert.Equal(t, geom.Pt(1000, 0, 0), spots[4].BasePlane.Origin)
}

func TestPlaceAlongCurveDeterministic(t *testing.T) {
	s := settingsWith(func(s *lot.Settings) { s.SpotAngle = 60 })
	a, _, _ := PlaceAlongCurve(dumbbell(), s, true, 0)
	b, _, _ := PlaceAlongCurve(dumbbell(), s, true, 0)
	assert.Equal(t, a, b)
}

func TestPlaceAlongCurveSpotBudget(t *testing.T) {
	spots, next, err := PlaceAlongCurve(square(1e7), lot.DefaultSettings(), true, 7)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSettings), "err = %v", err)
	assert.Nil(t, spots)
	assert.Equal(t, 7, next)

	assert.NoError(t, checkSpotBudget("guide", 1000, 250, 4))
	assert.Error(t, checkSpotBudget("guide", 1001, 250, 4))
	assert.Error(t, checkSpotBudget("guide", math.Inf(1), 250, 4))
	assert.Error(t, checkSpotBudget("guide", math.NaN(), 250, 4))
}
