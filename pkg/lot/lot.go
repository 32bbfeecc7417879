package lot

import (
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
)

// AccessPoint is a vehicle entry or exit on the lot boundary.
type AccessPoint struct {
	Location geom.Point
	Width    float64
	// Direction is the unit vector pointing into the lot. It is zero until
	// the point has been resolved against a boundary.
	Direction geom.Vec
	Resolved  bool
}

// NewAccessPoint returns an unresolved access point at location.
func NewAccessPoint(location geom.Point, width float64) AccessPoint {
	return AccessPoint{Location: location, Width: width}
}

// Spot is one parking space.
type Spot struct {
	Index    int
	Type     SpotType
	Boundary *geom.Polyline
	Width    float64 // frontage along the guide curve
	Length   float64
	Angle    float64 // degrees between the stall axis and the guide tangent
	// BasePlane has its origin at the spot's anchor on the guide, its X axis
	// along the guide tangent and its Z axis along the boundary normal.
	BasePlane geom.Plane
}

// Road is a drive lane.
type Road struct {
	Centerline geom.Curve
	Width      float64
	Type       RoadType
	LeftEdge   geom.Curve // optional
	RightEdge  geom.Curve // optional
}

// Island is a non-parkable area inside the lot.
type Island struct {
	Boundary geom.Curve
	Type     IslandType
}

// Warning records a problem the solver recovered from.
type Warning struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// ParkingLot is the result of one solve. Every solve returns a fresh value.
type ParkingLot struct {
	Boundary     geom.Curve
	Skirt        geom.Curve // guide curve used for the perimeter row
	Spots        []Spot
	Roads        []Road
	Islands      []Island
	AccessPoints []AccessPoint
	Warnings     []Warning
}

// New returns an empty lot with non-nil collections.
func New() *ParkingLot {
	return &ParkingLot{
		Spots:        []Spot{},
		Roads:        []Road{},
		Islands:      []Island{},
		AccessPoints: []AccessPoint{},
	}
}

// Warn appends a warning to the lot.
func (l *ParkingLot) Warn(code errors.Code, format string, args ...any) {
	e := errors.New(code, format, args...)
	l.Warnings = append(l.Warnings, Warning{Code: e.Code, Message: e.Message})
}

// NextIndex returns the index the next placed spot should receive.
func (l *ParkingLot) NextIndex() int {
	next := 0
	for _, s := range l.Spots {
		if s.Index >= next {
			next = s.Index + 1
		}
	}
	return next
}

// Deconstruct splits the lot into the curves a viewer draws: spot outlines,
// road centerlines and the lot boundary.
func (l *ParkingLot) Deconstruct() (spots []geom.Curve, roads []geom.Curve, boundary geom.Curve) {
	if l == nil {
		return nil, nil, nil
	}
	spots = make([]geom.Curve, 0, len(l.Spots))
	for _, s := range l.Spots {
		if s.Boundary != nil {
			spots = append(spots, s.Boundary)
		}
	}
	roads = make([]geom.Curve, 0, len(l.Roads))
	for _, r := range l.Roads {
		if !geom.IsNil(r.Centerline) {
			roads = append(roads, r.Centerline)
		}
	}
	return spots, roads, l.Boundary
}

// Stats summarises a lot for logs and CLI output.
type Stats struct {
	Spots        int     `json:"spots"`
	Roads        int     `json:"roads"`
	AccessPoints int     `json:"access_points"`
	Warnings     int     `json:"warnings"`

	// Areas are in square centimetres.
	Area        float64 `json:"area"`
	SpotArea    float64 `json:"spot_area"`
	AreaPerSpot float64 `json:"area_per_spot"`
}

// Stats computes summary figures for the lot.
func (l *ParkingLot) Stats() Stats {
	st := Stats{
		Spots:        len(l.Spots),
		Roads:        len(l.Roads),
		AccessPoints: len(l.AccessPoints),
		Warnings:     len(l.Warnings),
		Area:         geom.Area(l.Boundary),
	}
	for _, s := range l.Spots {
		st.SpotArea += geom.Area(s.Boundary)
	}
	if st.Spots > 0 {
		st.AreaPerSpot = st.Area / float64(st.Spots)
	}
	return st
}
