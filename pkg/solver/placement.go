package solver

import (
	"math"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// Limits on the size of a single solve. A request that would exceed them is
// rejected with an INVALID_SETTINGS error before anything is allocated.
const (
	MaxSpots = 100_000
	MaxRows  = 10_000
)

// PlaceAlongCurve places a row of spots along guide and returns them with
// the next free index.
//
// The guide is divided by arc length at the spot frontage (see
// [lot.Settings.Spacing]); closed guides wrap and are first normalized to
// wind counter-clockwise. Each spot starts at its division point, runs one
// frontage along the tangent and extends SpotLength along a stall axis at
// SpotAngle to the tangent. With isOuter the stalls lie to the left of
// travel, inside a closed guide; otherwise to the right.
//
// Indices run from startIndex in placement order. A null guide places
// nothing. Degenerate spot angles return an INVALID_SETTINGS error.
func PlaceAlongCurve(guide geom.Curve, s lot.Settings, isOuter bool, startIndex int) ([]lot.Spot, int, error) {
	if geom.IsNil(guide) {
		return nil, startIndex, nil
	}
	g := NormalizeWinding(guide)
	plane, ok := g.Plane()
	if !ok {
		return nil, startIndex, nil
	}
	return placeAlong(g, plane, s, isOuter, startIndex)
}

// placeAlong is PlaceAlongCurve with the placement plane given explicitly,
// for guides such as single lines whose own plane is ambiguous.
func placeAlong(g geom.Curve, plane geom.Plane, s lot.Settings, isOuter bool, next int) ([]lot.Spot, int, error) {
	spacing, err := s.Spacing()
	if err != nil {
		return nil, next, err
	}
	if err := errors.ValidatePositive("spot length", s.SpotLength); err != nil {
		return nil, next, err
	}

	if err := checkSpotBudget("guide", g.Length(), spacing, MaxSpots); err != nil {
		return nil, next, err
	}

	ts := g.DivideByLength(spacing)
	spots := make([]lot.Spot, 0, len(ts))
	for _, t := range ts {
		spot := newSpot(g.PointAt(t), g.TangentAt(t), plane.ZAxis, spacing, s, isOuter)
		spot.Index = next
		next++
		spots = append(spots, spot)
	}
	return spots, next, nil
}

// checkSpotBudget rejects a stretch of guide that would take more than limit
// spots at spacing. Non-finite lengths are rejected too.
func checkSpotBudget(what string, length, spacing float64, limit int) error {
	n := length / spacing
	if !(n <= float64(limit)) {
		return errors.New(errors.ErrCodeInvalidSettings,
			"%s would need %.0f spots at a spacing of %g, more than the limit of %d", what, n, spacing, limit)
	}
	return nil
}

// newSpot builds the stall anchored at p. tangent is the guide direction and
// up the placement normal.
func newSpot(p geom.Point, tangent, up geom.Vec, spacing float64, s lot.Settings, isOuter bool) lot.Spot {
	side := up.Cross(tangent).Unit()
	if !isOuter {
		side = side.Neg()
	}
	axis := stallAxis(tangent, side, s.SpotAngle)

	front := tangent.Mul(spacing)
	depth := axis.Mul(s.SpotLength)
	p1 := p.Translate(front)
	ring := geom.NewClosedPolyline(p, p1, p1.Translate(depth), p.Translate(depth))

	return lot.Spot{
		Type:      lot.SpotStandard,
		Boundary:  ring,
		Width:     s.SpotWidth,
		Length:    s.SpotLength,
		Angle:     s.SpotAngle,
		BasePlane: geom.NewPlane(p, tangent, up),
	}
}

// stallAxis returns the unit direction a stall extends in: side at 90°,
// otherwise the tangent turned towards side by angle degrees.
func stallAxis(tangent, side geom.Vec, angle float64) geom.Vec {
	if angle == 90 {
		return side
	}
	rad := geom.ToRadians(angle)
	return tangent.Mul(math.Cos(rad)).Add(side.Mul(math.Sin(rad))).Unit()
}

// Depth returns how far a stall reaches away from its guide curve.
func Depth(s lot.Settings) float64 {
	if s.SpotAngle == 90 {
		return s.SpotLength
	}
	return s.SpotLength * math.Sin(geom.ToRadians(s.SpotAngle))
}
