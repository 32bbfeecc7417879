package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

func assertVecNear(t *testing.T, want, got geom.Vec) {
	t.Helper()
	assert.True(t, want.EqualWithin(got, 1e-9), "want %v, got %v", want, got)
}

func TestResolveAccessPointsEdgeMidpoint(t *testing.T) {
	tests := []struct {
		name string
		raw  geom.Point
		loc  geom.Point
		dir  geom.Vec
	}{
		{"bottom", geom.Pt(1000, 0, 0), geom.Pt(1000, 0, 0), geom.V(0, 1, 0)},
		{"bottom outside", geom.Pt(1000, -30, 0), geom.Pt(1000, 0, 0), geom.V(0, 1, 0)},
		{"right", geom.Pt(2000, 1000, 0), geom.Pt(2000, 1000, 0), geom.V(-1, 0, 0)},
		{"top inside", geom.Pt(1000, 1990, 0), geom.Pt(1000, 2000, 0), geom.V(0, -1, 0)},
		{"left above", geom.Pt(0, 1000, 500), geom.Pt(0, 1000, 0), geom.V(1, 0, 0)},
	}
	for _, b := range []*geom.Polyline{square(2000), square(2000).Reverse()} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := ResolveAccessPoints([]lot.AccessPoint{lot.NewAccessPoint(tt.raw, 600)}, b)
				require.Len(t, got, 1)
				assert.True(t, got[0].Resolved)
				assert.True(t, tt.loc.EqualWithin(got[0].Location, 1e-9), "location %v", got[0].Location)
				assertVecNear(t, tt.dir, got[0].Direction)
				assert.InDelta(t, 1, got[0].Direction.Length(), 1e-12)
				assert.Equal(t, 600.0, got[0].Width)
			})
		}
	}
}

func TestResolveAccessPointsIsPure(t *testing.T) {
	in := []lot.AccessPoint{lot.NewAccessPoint(geom.Pt(500, -100, 0), 600)}
	out := ResolveAccessPoints(in, square(2000))
	require.Len(t, out, 1)
	assert.Equal(t, geom.Pt(500, -100, 0), in[0].Location)
	assert.True(t, in[0].Direction.IsZero())
	assert.False(t, in[0].Resolved)
}

func TestResolveAccessPointsIdempotent(t *testing.T) {
	b := geom.NewClosedPolyline(
		geom.Pt(0, 0, 0), geom.Pt(2000, 0, 0), geom.Pt(2000, 1000, 0),
		geom.Pt(1000, 1000, 0), geom.Pt(1000, 2000, 0), geom.Pt(0, 2000, 0),
	)
	raw := []lot.AccessPoint{
		lot.NewAccessPoint(geom.Pt(1500, 1200, 0), 600),
		lot.NewAccessPoint(geom.Pt(2000, 0, 0), 600),
		lot.NewAccessPoint(geom.Pt(-50, 700, 0), 600),
	}
	once := ResolveAccessPoints(raw, b)
	twice := ResolveAccessPoints(once, b)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.True(t, once[i].Location.EqualWithin(twice[i].Location, geom.DefaultTolerance))
		assertVecNear(t, once[i].Direction, twice[i].Direction)
	}
}

func TestResolveAccessPointsAbsentInputs(t *testing.T) {
	assert.Nil(t, ResolveAccessPoints(nil, square(10)))
	assert.Nil(t, ResolveAccessPoints([]lot.AccessPoint{}, square(10)))
	assert.Nil(t, ResolveAccessPoints([]lot.AccessPoint{lot.NewAccessPoint(geom.Pt(0, 0, 0), 1)}, nil))
}
