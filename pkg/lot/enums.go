package lot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sardine/pkg/errors"
)

// PerimeterMode selects whether and how a road runs along the lot edge.
type PerimeterMode int

const (
	PerimeterNone PerimeterMode = iota
	PerimeterOneSide
	PerimeterDouble
)

// SpotType classifies a parking space.
type SpotType int

const (
	SpotStandard SpotType = iota
	SpotHandicap
	SpotElderly
	SpotBike
	SpotEV
)

// RoadType classifies a road.
type RoadType int

const (
	RoadPerimeter RoadType = iota
	RoadAxial
	RoadAisle
	RoadAccess
)

// IslandType classifies a non-parkable island.
type IslandType int

const (
	IslandStandard IslandType = iota
	IslandPedestrian
	IslandCorner
	IslandMedian
)

// RowAlignment selects how interior rows are oriented.
type RowAlignment int

const (
	// AlignEdge runs rows parallel to the longest boundary edge.
	AlignEdge RowAlignment = iota
	// AlignAxis runs rows parallel to the boundary plane's X axis.
	AlignAxis
)

var (
	perimeterModeNames = []string{"none", "one_side", "double"}
	spotTypeNames      = []string{"standard", "handicap", "elderly", "bike", "ev"}
	roadTypeNames      = []string{"perimeter", "axial", "aisle", "access"}
	islandTypeNames    = []string{"standard", "pedestrian", "corner", "median"}
	rowAlignmentNames  = []string{"edge", "axis"}
)

func enumString(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func enumParse(kind string, names []string, text []byte) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.ReplaceAll(s, "-", "_")
	for i, n := range names {
		if s == n || s == strings.ReplaceAll(n, "_", "") {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSettings, "unknown %s %q (valid: %s)", kind, text, strings.Join(names, ", "))
}

func (m PerimeterMode) String() string { return enumString(perimeterModeNames, int(m)) }
func (t SpotType) String() string      { return enumString(spotTypeNames, int(t)) }
func (t RoadType) String() string      { return enumString(roadTypeNames, int(t)) }
func (t IslandType) String() string    { return enumString(islandTypeNames, int(t)) }
func (a RowAlignment) String() string  { return enumString(rowAlignmentNames, int(a)) }

func (m PerimeterMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (t SpotType) MarshalText() ([]byte, error)      { return []byte(t.String()), nil }
func (t RoadType) MarshalText() ([]byte, error)      { return []byte(t.String()), nil }
func (t IslandType) MarshalText() ([]byte, error)    { return []byte(t.String()), nil }
func (a RowAlignment) MarshalText() ([]byte, error)  { return []byte(a.String()), nil }

func (m *PerimeterMode) UnmarshalText(text []byte) error {
	v, err := enumParse("perimeter mode", perimeterModeNames, text)
	if err != nil {
		return err
	}
	*m = PerimeterMode(v)
	return nil
}

func (t *SpotType) UnmarshalText(text []byte) error {
	v, err := enumParse("spot type", spotTypeNames, text)
	if err != nil {
		return err
	}
	*t = SpotType(v)
	return nil
}

func (t *RoadType) UnmarshalText(text []byte) error {
	v, err := enumParse("road type", roadTypeNames, text)
	if err != nil {
		return err
	}
	*t = RoadType(v)
	return nil
}

func (t *IslandType) UnmarshalText(text []byte) error {
	v, err := enumParse("island type", islandTypeNames, text)
	if err != nil {
		return err
	}
	*t = IslandType(v)
	return nil
}

func (a *RowAlignment) UnmarshalText(text []byte) error {
	v, err := enumParse("row alignment", rowAlignmentNames, text)
	if err != nil {
		return err
	}
	*a = RowAlignment(v)
	return nil
}
