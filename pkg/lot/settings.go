package lot

import (
	"math"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultSpotWidth           = 250.0
	DefaultSpotLength          = 500.0
	DefaultSpotAngle           = 90.0
	DefaultPeripheralRoadWidth = 600.0
	DefaultSkirtOffset         = 50.0
	DefaultIslandRadius        = 50.0

	// MinSpotAngle is the smallest angle, in degrees, a spot may make with
	// its guide curve. The same margin applies below 180°.
	MinSpotAngle = 1.0
)

// Settings holds the dimensions that drive a layout. All lengths are in
// centimetres and angles in degrees. Settings is a value type; the solver
// never modifies it.
type Settings struct {
	SpotWidth  float64 `json:"spot_width" toml:"spot_width"`
	SpotLength float64 `json:"spot_length" toml:"spot_length"`
	SpotAngle  float64 `json:"spot_angle" toml:"spot_angle"` // 90 = perpendicular

	PeripheralRoadWidth float64 `json:"peripheral_road_width" toml:"peripheral_road_width"`
	AxialRoadWidth      float64 `json:"axial_road_width" toml:"axial_road_width"`
	AisleWidth          float64 `json:"aisle_width" toml:"aisle_width"`

	SkirtOffset  float64 `json:"skirt_offset" toml:"skirt_offset"`
	IslandRadius float64 `json:"island_radius" toml:"island_radius"`

	PerimeterMode PerimeterMode `json:"perimeter_mode" toml:"perimeter_mode"`

	// FillInterior enables row filling inside the perimeter ring.
	FillInterior bool         `json:"fill_interior" toml:"fill_interior"`
	RowAlignment RowAlignment `json:"row_alignment" toml:"row_alignment"`
}

// DefaultSettings returns the settings used when the user supplies none.
func DefaultSettings() Settings {
	return Settings{
		SpotWidth:           DefaultSpotWidth,
		SpotLength:          DefaultSpotLength,
		SpotAngle:           DefaultSpotAngle,
		PeripheralRoadWidth: DefaultPeripheralRoadWidth,
		AxialRoadWidth:      DefaultPeripheralRoadWidth,
		AisleWidth:          DefaultPeripheralRoadWidth,
		SkirtOffset:         DefaultSkirtOffset,
		IslandRadius:        DefaultIslandRadius,
		PerimeterMode:       PerimeterNone,
		RowAlignment:        AlignEdge,
	}
}

// Validate checks the settings and returns an INVALID_SETTINGS error
// describing the first problem found.
func (s Settings) Validate() error {
	if err := errors.ValidatePositive("spot width", s.SpotWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("spot length", s.SpotLength); err != nil {
		return err
	}
	if err := errors.ValidateRange("spot angle", s.SpotAngle, MinSpotAngle, 180-MinSpotAngle); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"peripheral road width", s.PeripheralRoadWidth},
		{"axial road width", s.AxialRoadWidth},
		{"aisle width", s.AisleWidth},
		{"skirt offset", s.SkirtOffset},
		{"island radius", s.IslandRadius},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if s.PerimeterMode < PerimeterNone || s.PerimeterMode > PerimeterDouble {
		return errors.New(errors.ErrCodeInvalidSettings, "unknown perimeter mode %d", int(s.PerimeterMode))
	}
	if s.RowAlignment < AlignEdge || s.RowAlignment > AlignAxis {
		return errors.New(errors.ErrCodeInvalidSettings, "unknown row alignment %d", int(s.RowAlignment))
	}
	return nil
}

// Spacing returns the frontage each spot occupies along its guide curve:
// the spot width at 90°, and SpotWidth / sin(SpotAngle) otherwise. Angles
// closer than MinSpotAngle to 0° or 180° are rejected.
func (s Settings) Spacing() (float64, error) {
	if err := errors.ValidatePositive("spot width", s.SpotWidth); err != nil {
		return 0, err
	}
	if err := errors.ValidateRange("spot angle", s.SpotAngle, MinSpotAngle, 180-MinSpotAngle); err != nil {
		return 0, err
	}
	if s.SpotAngle == 90 {
		return s.SpotWidth, nil
	}
	return s.SpotWidth / math.Sin(geom.ToRadians(s.SpotAngle)), nil
}

// RowPitch returns the distance between neighbouring interior rows.
func (s Settings) RowPitch() float64 {
	return s.SpotLength + s.AisleWidth
}
