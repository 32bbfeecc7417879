package solver

import (
	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

func square(side float64) *geom.Polyline {
	return geom.NewClosedPolyline(
		geom.Pt(0, 0, 0), geom.Pt(side, 0, 0), geom.Pt(side, side, 0), geom.Pt(0, side, 0),
	)
}

// dumbbell is two squares joined by a corridor 100 wide.
func dumbbell() *geom.Polyline {
	return geom.NewClosedPolyline(
		geom.Pt(0, 0, 0), geom.Pt(1000, 0, 0), geom.Pt(1000, 450, 0), geom.Pt(1500, 450, 0),
		geom.Pt(1500, 200, 0), geom.Pt(2100, 200, 0), geom.Pt(2100, 800, 0), geom.Pt(1500, 800, 0),
		geom.Pt(1500, 550, 0), geom.Pt(1000, 550, 0), geom.Pt(1000, 1000, 0), geom.Pt(0, 1000, 0),
	)
}

func settingsWith(modify func(*lot.Settings)) lot.Settings {
	s := lot.DefaultSettings()
	if modify != nil {
		modify(&s)
	}
	return s
}

func spotRing(s lot.Spot) orb.Ring {
	return geom.LocalRing(geom.WorldXY, s.Boundary.Vertices())
}
