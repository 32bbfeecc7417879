package solver

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// FillRegion fills the interior of boundary, inside the perimeter ring, with
// parallel rows of spots and the aisles that serve them. Accepted spots are
// appended to pl with contiguous indices starting at nextIndex; the next free
// index is returned.
//
// The fill runs as a state machine:
//
//   - RowGeneration lays out row lines at SpotLength + AisleWidth pitch,
//     parallel to the longest boundary edge or to the plane X axis
//   - SpanIntersection clips each row line to the fillable region
//   - Placement places candidate spots along each span
//   - Culling drops candidates that leave the lot or the region, or overlap
//     an earlier spot, an access point's clearance disc, an island or an
//     axial road
//
// A lot too small to hold an interior row is not an error; nothing is added.
func FillRegion(boundary geom.Curve, s lot.Settings, pl *lot.ParkingLot, nextIndex int) (int, error) {
	if geom.IsNil(boundary) || pl == nil {
		return nextIndex, nil
	}
	if ok, msg := Validate(boundary); !ok {
		return nextIndex, errors.New(errors.ErrCodeInvalidBoundary, "%s", msg)
	}
	if err := s.Validate(); err != nil {
		return nextIndex, err
	}

	f, err := newFiller(boundary, s, pl, nextIndex)
	if err != nil {
		return nextIndex, err
	}
	if err := f.run(); err != nil {
		return nextIndex, err
	}
	pl.Spots = append(pl.Spots, f.accepted...)
	pl.Roads = append(pl.Roads, BuildAisleRoads(f.aisles, f.plane, s)...)
	return f.next, nil
}

// =============================================================================
// State machine
// =============================================================================

type fillState int

const (
	stateRowGeneration fillState = iota
	stateSpanIntersection
	statePlacement
	stateCulling
	stateDone
)

func (st fillState) String() string {
	switch st {
	case stateRowGeneration:
		return "row-generation"
	case stateSpanIntersection:
		return "span-intersection"
	case statePlacement:
		return "placement"
	case stateCulling:
		return "culling"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// span is the part of a row's frontage line inside the region, as distances
// along the row direction.
type span struct {
	row      int
	from, to float64
}

type candidate struct {
	spot lot.Spot
	ring orb.Ring
	span int
}

type disc struct {
	center orb.Point
	radius float64
}

type filler struct {
	state fillState
	s     lot.Settings
	plane geom.Plane

	lotRing orb.Ring
	regions []orb.Ring
	dir     orb.Point // row direction
	nrm     orb.Point // row normal, left of dir
	spacing float64
	depth   float64

	// obstacles
	placed    []orb.Ring
	discs     []disc
	islands   []orb.Ring
	corridors []orb.Ring

	rows       []float64 // frontage line offsets along nrm
	spans      []span
	candidates []candidate
	accepted   []lot.Spot
	aisles     []geom.Line
	next       int
}

func newFiller(boundary geom.Curve, s lot.Settings, pl *lot.ParkingLot, next int) (*filler, error) {
	spacing, err := s.Spacing()
	if err != nil {
		return nil, err
	}
	b := NormalizeWinding(boundary)
	plane, _ := b.Plane()

	f := &filler{
		s:       s,
		plane:   plane,
		lotRing: geom.LocalRing(plane, geom.Vertices(b)),
		spacing: spacing,
		depth:   Depth(s),
		next:    next,
	}

	inset := s.SkirtOffset + f.depth + s.PeripheralRoadWidth
	if loops, err := OffsetLoops(b, inset); err == nil {
		for _, l := range loops {
			f.regions = append(f.regions, geom.LocalRing(plane, geom.Vertices(l)))
		}
	}

	f.dir = orb.Point{1, 0}
	if s.RowAlignment == lot.AlignEdge {
		f.dir = f.longestEdgeDir(b)
	}
	f.nrm = orb.Point{-f.dir[1], f.dir[0]}

	for _, sp := range pl.Spots {
		if sp.Boundary != nil {
			f.placed = append(f.placed, geom.LocalRing(plane, sp.Boundary.Vertices()))
		}
	}
	for _, ap := range pl.AccessPoints {
		f.discs = append(f.discs, disc{center: plane.ToLocal(ap.Location), radius: ap.Width / 2})
	}
	for _, is := range pl.Islands {
		if !geom.IsNil(is.Boundary) {
			f.islands = append(f.islands, geom.LocalRing(plane, geom.Vertices(is.Boundary)))
		}
	}
	for _, r := range pl.Roads {
		if r.Type != lot.RoadAxial {
			continue
		}
		if c := corridor(r, plane); c != nil {
			f.corridors = append(f.corridors, c)
		}
	}
	return f, nil
}

func (f *filler) longestEdgeDir(b geom.Curve) orb.Point {
	best, bestLen := orb.Point{1, 0}, 0.0
	for _, e := range UsableEdges(b) {
		a, c := f.plane.ToLocal(e.PointAt(0)), f.plane.ToLocal(e.PointAt(e.Length()))
		d := orb.Point{c[0] - a[0], c[1] - a[1]}
		if l := math.Hypot(d[0], d[1]); l > bestLen+OffsetTolerance {
			best, bestLen = orb.Point{d[0] / l, d[1] / l}, l
		}
	}
	return best
}

func (f *filler) run() error {
	for f.state != stateDone {
		next, err := f.step()
		if err != nil {
			return err
		}
		f.state = next
	}
	return nil
}

func (f *filler) step() (fillState, error) {
	switch f.state {
	case stateRowGeneration:
		return f.generateRows()
	case stateSpanIntersection:
		return f.intersectSpans(), nil
	case statePlacement:
		return f.placeCandidates()
	case stateCulling:
		return f.cull(), nil
	}
	return stateDone, nil
}

// generateRows spaces frontage lines across the region. Row k's stalls
// occupy [o-depth, o] along the normal and its aisle [o, o+AisleWidth].
func (f *filler) generateRows() (fillState, error) {
	if len(f.regions) == 0 {
		return stateDone, nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range f.regions {
		for _, p := range r {
			d := dot(p, f.nrm)
			lo, hi = math.Min(lo, d), math.Max(hi, d)
		}
	}
	pitch := f.s.RowPitch()
	if n := (hi - lo) / pitch; !(n <= MaxRows) {
		return stateDone, errors.New(errors.ErrCodeInvalidSettings,
			"interior fill would need %.0f rows at a pitch of %g, more than the limit of %d", n, pitch, MaxRows)
	}
	for k := 0; ; k++ {
		o := lo + f.depth + float64(k)*pitch
		if o-f.depth >= hi-OffsetTolerance {
			break
		}
		f.rows = append(f.rows, o)
	}
	if len(f.rows) == 0 {
		return stateDone, nil
	}
	return stateSpanIntersection, nil
}

// intersectSpans clips every row line against every region loop. Spans too
// short for a single spot are dropped.
func (f *filler) intersectSpans() fillState {
	for i, o := range f.rows {
		for _, r := range f.regions {
			var us []float64
			for j := 0; j+1 < len(r); j++ {
				da, db := dot(r[j], f.nrm)-o, dot(r[j+1], f.nrm)-o
				if (da > 0) == (db > 0) {
					continue
				}
				t := da / (da - db)
				x := orb.Point{r[j][0] + t*(r[j+1][0]-r[j][0]), r[j][1] + t*(r[j+1][1]-r[j][1])}
				us = append(us, dot(x, f.dir))
			}
			sort.Float64s(us)
			for k := 0; k+1 < len(us); k += 2 {
				if us[k+1]-us[k] >= f.spacing-OffsetTolerance {
					f.spans = append(f.spans, span{row: i, from: us[k], to: us[k+1]})
				}
			}
		}
	}
	if len(f.spans) == 0 {
		return stateDone
	}
	return statePlacement
}

// placeCandidates places a spot row along each span, stalls on the right of
// the row direction. Indices are provisional until culling.
func (f *filler) placeCandidates() (fillState, error) {
	for i, sp := range f.spans {
		if err := checkSpotBudget("interior fill", sp.to-sp.from, f.spacing, MaxSpots-len(f.candidates)); err != nil {
			return stateDone, err
		}
		guide := geom.Ln(f.world(sp.from, f.rows[sp.row]), f.world(sp.to, f.rows[sp.row]))
		spots, _, err := placeAlong(guide, f.plane, f.s, false, 0)
		if err != nil {
			return stateDone, err
		}
		for _, s := range spots {
			f.candidates = append(f.candidates, candidate{
				spot: s,
				ring: geom.LocalRing(f.plane, s.Boundary.Vertices()),
				span: i,
			})
		}
	}
	if len(f.candidates) == 0 {
		return stateDone, nil
	}
	return stateCulling, nil
}

// cull keeps candidates in placement order, numbering survivors, and lays an
// aisle along the stretch of each span that kept spots.
func (f *filler) cull() fillState {
	type extent struct{ from, to float64 }
	used := make(map[int]*extent)

	for _, c := range f.candidates {
		if !f.fits(c.ring) {
			continue
		}
		c.spot.Index = f.next
		f.next++
		f.accepted = append(f.accepted, c.spot)
		f.placed = append(f.placed, c.ring)

		u := dot(f.plane.ToLocal(c.spot.BasePlane.Origin), f.dir)
		if e, ok := used[c.span]; ok {
			e.from, e.to = math.Min(e.from, u), math.Max(e.to, u+f.spacing)
		} else {
			used[c.span] = &extent{from: u, to: u + f.spacing}
		}
	}

	for i, sp := range f.spans {
		e, ok := used[i]
		if !ok {
			continue
		}
		o := f.rows[sp.row] + f.s.AisleWidth/2
		f.aisles = append(f.aisles, geom.Ln(f.world(e.from, o), f.world(e.to, o)))
	}
	return stateDone
}

func (f *filler) fits(ring orb.Ring) bool {
	tol := OffsetTolerance
	if !geom.RingInside(ring, f.lotRing, tol) {
		return false
	}
	inRegion := false
	for _, r := range f.regions {
		if geom.RingInside(ring, r, tol) {
			inRegion = true
			break
		}
	}
	if !inRegion {
		return false
	}
	bound := ring.Bound()
	for _, p := range f.placed {
		if bound.Intersects(p.Bound()) && geom.ConvexOverlap(ring, p, tol) {
			return false
		}
	}
	for _, d := range f.discs {
		if geom.DiscOverlap(ring, d.center, d.radius, tol) {
			return false
		}
	}
	for _, is := range f.islands {
		if geom.RingsOverlap(ring, is, tol) {
			return false
		}
	}
	for _, c := range f.corridors {
		if geom.ConvexOverlap(ring, c, tol) {
			return false
		}
	}
	return true
}

// world maps a position given as distance u along the row direction and o
// along the row normal back to world space.
func (f *filler) world(u, o float64) geom.Point {
	return f.plane.ToWorld(orb.Point{
		u*f.dir[0] + o*f.nrm[0],
		u*f.dir[1] + o*f.nrm[1],
	})
}

func dot(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}
