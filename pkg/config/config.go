// Package config reads and writes layout settings as TOML.
//
// A settings file names any subset of the [lot.Settings] fields; missing
// fields keep their defaults:
//
//	spot_width = 250
//	spot_length = 500
//	spot_angle = 60
//	peripheral_road_width = 650
//	perimeter_mode = "one_side"
//	fill_interior = true
//
// When a file sets peripheral_road_width but not axial_road_width or
// aisle_width, those follow the peripheral width.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/lot"
)

// FileName is the settings file looked up by [Discover].
const FileName = "settings.toml"

// Overlay is a partial set of settings. Nil fields are left unchanged when
// the overlay is applied. It decodes from both TOML and JSON.
type Overlay struct {
	SpotWidth           *float64           `toml:"spot_width" json:"spot_width,omitempty"`
	SpotLength          *float64           `toml:"spot_length" json:"spot_length,omitempty"`
	SpotAngle           *float64           `toml:"spot_angle" json:"spot_angle,omitempty"`
	PeripheralRoadWidth *float64           `toml:"peripheral_road_width" json:"peripheral_road_width,omitempty"`
	AxialRoadWidth      *float64           `toml:"axial_road_width" json:"axial_road_width,omitempty"`
	AisleWidth          *float64           `toml:"aisle_width" json:"aisle_width,omitempty"`
	SkirtOffset         *float64           `toml:"skirt_offset" json:"skirt_offset,omitempty"`
	IslandRadius        *float64           `toml:"island_radius" json:"island_radius,omitempty"`
	PerimeterMode       *lot.PerimeterMode `toml:"perimeter_mode" json:"perimeter_mode,omitempty"`
	FillInterior        *bool              `toml:"fill_interior" json:"fill_interior,omitempty"`
	RowAlignment        *lot.RowAlignment  `toml:"row_alignment" json:"row_alignment,omitempty"`
}

// Apply returns base with every set field of o replaced.
func (o Overlay) Apply(base lot.Settings) lot.Settings {
	s := base
	setFloat(&s.SpotWidth, o.SpotWidth)
	setFloat(&s.SpotLength, o.SpotLength)
	setFloat(&s.SpotAngle, o.SpotAngle)
	setFloat(&s.SkirtOffset, o.SkirtOffset)
	setFloat(&s.IslandRadius, o.IslandRadius)
	if o.PeripheralRoadWidth != nil {
		s.PeripheralRoadWidth = *o.PeripheralRoadWidth
		if o.AxialRoadWidth == nil {
			s.AxialRoadWidth = s.PeripheralRoadWidth
		}
		if o.AisleWidth == nil {
			s.AisleWidth = s.PeripheralRoadWidth
		}
	}
	setFloat(&s.AxialRoadWidth, o.AxialRoadWidth)
	setFloat(&s.AisleWidth, o.AisleWidth)
	if o.PerimeterMode != nil {
		s.PerimeterMode = *o.PerimeterMode
	}
	if o.FillInterior != nil {
		s.FillInterior = *o.FillInterior
	}
	if o.RowAlignment != nil {
		s.RowAlignment = *o.RowAlignment
	}
	return s
}

// IsZero reports whether the overlay sets nothing.
func (o Overlay) IsZero() bool {
	return o == Overlay{}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Parse decodes TOML settings over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data []byte) (lot.Settings, error) {
	var o Overlay
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return lot.Settings{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return lot.Settings{}, errors.New(errors.ErrCodeInvalidFormat, "unknown settings keys: %s", strings.Join(keys, ", "))
	}
	s := o.Apply(lot.DefaultSettings())
	if err := s.Validate(); err != nil {
		return lot.Settings{}, err
	}
	return s, nil
}

// Load reads a TOML settings file.
func Load(path string) (lot.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lot.Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
		}
		return lot.Settings{}, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return lot.Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s lot.Settings) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Marshal returns s as TOML.
func Marshal(s lot.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dir returns the user's sardine configuration directory, following
// XDG_CONFIG_HOME where set.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sardine"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sardine"), nil
}

// Discover loads the user's settings file if there is one, and the defaults
// otherwise. The returned path is empty when no file was found.
func Discover() (lot.Settings, string, error) {
	dir, err := Dir()
	if err != nil {
		return lot.DefaultSettings(), "", nil
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return lot.DefaultSettings(), "", nil
	}
	s, err := Load(path)
	if err != nil {
		return lot.Settings{}, path, err
	}
	return s, path, nil
}
