package solver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// Request bundles the inputs of one solve.
type Request struct {
	Boundary     geom.Curve
	AccessPoints []lot.AccessPoint
	// AxialLines are optional guide lines for axial roads through the lot.
	AxialLines []geom.Curve
	Settings   lot.Settings
}

// Solver runs layout solves. It holds nothing but a logger, so one Solver
// may serve concurrent solves.
type Solver struct {
	Logger *log.Logger
}

// New returns a Solver that traces each stage to logger. A nil logger
// discards output.
func New(logger *log.Logger) *Solver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{Logger: logger}
}

// Solve computes a layout with a discarding logger. See [Solver.Solve].
func Solve(boundary geom.Curve, accessPoints []lot.AccessPoint, s lot.Settings) (*lot.ParkingLot, error) {
	return New(nil).Solve(boundary, accessPoints, s)
}

// Solve computes the layout for boundary. An invalid boundary returns an
// INVALID_BOUNDARY error carrying the validation message; invalid settings
// return INVALID_SETTINGS. A skirt offset that fails falls back to the
// boundary and is reported as a warning on the result.
func (sv *Solver) Solve(boundary geom.Curve, accessPoints []lot.AccessPoint, s lot.Settings) (*lot.ParkingLot, error) {
	return sv.SolveRequest(Request{Boundary: boundary, AccessPoints: accessPoints, Settings: s})
}

// SolveRequest is Solve with optional axial lines.
func (sv *Solver) SolveRequest(req Request) (*lot.ParkingLot, error) {
	s := req.Settings
	if ok, msg := Validate(req.Boundary); !ok {
		return nil, errors.New(errors.ErrCodeInvalidBoundary, "%s", msg)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := validateGuides(req); err != nil {
		return nil, err
	}
	spacing, _ := s.Spacing()
	if err := checkSpotBudget("boundary perimeter", req.Boundary.Length(), spacing, MaxSpots); err != nil {
		return nil, err
	}

	pl := lot.New()
	pl.Boundary = req.Boundary
	if aps := ResolveAccessPoints(req.AccessPoints, req.Boundary); aps != nil {
		pl.AccessPoints = aps
	}
	sv.Logger.Debug("resolved access points", "count", len(pl.AccessPoints))

	pl.Skirt = sv.skirt(pl, s)
	pl.Roads = append(pl.Roads, BuildPerimeterRoads(pl.Skirt, s)...)

	spots, next, err := PlaceAlongCurve(pl.Skirt, s, true, 0)
	if err != nil {
		return nil, err
	}
	pl.Spots = append(pl.Spots, spots...)
	sv.Logger.Debug("placed perimeter spots", "spots", len(spots))

	if len(req.AxialLines) > 0 {
		axial := BuildAxialRoads(req.AxialLines, req.Boundary, s)
		pl.Roads = append(pl.Roads, axial...)
		next = clearCorridors(pl, axial)
		sv.Logger.Debug("built axial roads", "roads", len(axial), "spots", len(pl.Spots))
	}

	if s.FillInterior {
		before := len(pl.Spots)
		if next, err = FillRegion(req.Boundary, s, pl, next); err != nil {
			return nil, err
		}
		sv.Logger.Debug("filled interior", "spots", len(pl.Spots)-before, "next", next)
	}

	sv.Logger.Debug("solved lot",
		"spots", len(pl.Spots),
		"roads", len(pl.Roads),
		"warnings", len(pl.Warnings))
	return pl, nil
}

// skirt returns the perimeter guide curve, falling back to the boundary
// when the offset collapses.
func (sv *Solver) skirt(pl *lot.ParkingLot, s lot.Settings) geom.Curve {
	loops, err := OffsetLoops(pl.Boundary, s.SkirtOffset)
	if err != nil {
		pl.Warn(errors.ErrCodeOffsetFailed, "skirt offset of %g failed; using the boundary", s.SkirtOffset)
		sv.Logger.Warn("skirt offset failed, using boundary", "offset", s.SkirtOffset, "err", err)
		return NormalizeWinding(pl.Boundary)
	}
	if len(loops) > 1 {
		pl.Warn(errors.ErrCodeOffsetAmbiguous, "skirt offset split into %d loops; kept the largest", len(loops))
		sv.Logger.Debug("skirt offset split", "loops", len(loops))
	}
	return NormalizeWinding(Largest(loops))
}

// clearCorridors removes spots that overlap an axial road and renumbers the
// rest in order. It returns the next free index.
func clearCorridors(pl *lot.ParkingLot, axial []lot.Road) int {
	plane, _ := pl.Boundary.Plane()
	var corridors []orb.Ring
	for _, r := range axial {
		if c := corridor(r, plane); c != nil {
			corridors = append(corridors, c)
		}
	}
	kept := pl.Spots[:0]
	for _, sp := range pl.Spots {
		ring := geom.LocalRing(plane, sp.Boundary.Vertices())
		blocked := false
		for _, c := range corridors {
			if geom.ConvexOverlap(ring, c, OffsetTolerance) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		sp.Index = len(kept)
		kept = append(kept, sp)
	}
	pl.Spots = kept
	return len(kept)
}

// validateGuides rejects access points and axial lines with non-finite
// coordinates.
func validateGuides(req Request) error {
	for i, ap := range req.AccessPoints {
		p := ap.Location
		if err := errors.ValidateFinite(fmt.Sprintf("access point %d", i), p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for i, c := range req.AxialLines {
		if geom.IsNil(c) {
			continue
		}
		for _, p := range geom.Vertices(c) {
			if err := errors.ValidateFinite(fmt.Sprintf("axial line %d", i), p.X, p.Y, p.Z); err != nil {
				return err
			}
		}
	}
	return nil
}
