package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/lot"
)

func TestParseEmptyGivesDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s != lot.DefaultSettings() {
		t.Errorf("Parse(nil) = %+v, want defaults", s)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
spot_width = 240
spot_angle = 60
peripheral_road_width = 700
aisle_width = 550
perimeter_mode = "one_side"
fill_interior = true
row_alignment = "axis"
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := lot.DefaultSettings()
	want.SpotWidth = 240
	want.SpotAngle = 60
	want.PeripheralRoadWidth = 700
	want.AxialRoadWidth = 700
	want.AisleWidth = 550
	want.PerimeterMode = lot.PerimeterOneSide
	want.FillInterior = true
	want.RowAlignment = lot.AlignAxis
	if s != want {
		t.Errorf("Parse() = %+v\nwant %+v", s, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "spot_width = ", errors.ErrCodeInvalidFormat},
		{"unknown key", "spot_widht = 250", errors.ErrCodeInvalidFormat},
		{"bad enum", `perimeter_mode = "triple"`, errors.ErrCodeInvalidFormat},
		{"wrong type", `spot_width = "wide"`, errors.ErrCodeInvalidFormat},
		{"zero angle", "spot_angle = 0", errors.ErrCodeInvalidSettings},
		{"negative skirt", "skirt_offset = -5", errors.ErrCodeInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) error = %v, want code %s", tt.data, err, tt.code)
			}
		})
	}

	_, err := Parse([]byte("spot_widht = 250\nisland = 3"))
	if msg := errors.UserMessage(err); !strings.Contains(msg, "island, spot_widht") {
		t.Errorf("message %q should list unknown keys in order", msg)
	}
}

func TestOverlayApply(t *testing.T) {
	w := 800.0
	o := Overlay{PeripheralRoadWidth: &w}
	s := o.Apply(lot.DefaultSettings())
	if s.AisleWidth != 800 || s.AxialRoadWidth != 800 {
		t.Errorf("aisle/axial = %v/%v, want to follow peripheral width", s.AisleWidth, s.AxialRoadWidth)
	}

	if !(Overlay{}).IsZero() {
		t.Error("empty overlay should be zero")
	}
	if o.IsZero() {
		t.Error("overlay with a field set is not zero")
	}
	if got := (Overlay{}).Apply(lot.DefaultSettings()); got != lot.DefaultSettings() {
		t.Error("empty overlay should not change settings")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := lot.DefaultSettings()
	s.SpotAngle = 45
	s.PerimeterMode = lot.PerimeterDouble
	s.FillInterior = true

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`perimeter_mode = "double"`)) {
		t.Errorf("Marshal() output missing enum name:\n%s", data)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.toml")
	if err := os.WriteFile(path, []byte("spot_length = 480\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.SpotLength != 480 {
		t.Errorf("SpotLength = %v, want 480", s.SpotLength)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	s, path, err := Discover()
	if err != nil || path != "" || s != lot.DefaultSettings() {
		t.Fatalf("Discover() without file = %+v, %q, %v", s, path, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "sardine"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "sardine", FileName)
	if err := os.WriteFile(want, []byte("fill_interior = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, path, err = Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if path != want || !s.FillInterior {
		t.Errorf("Discover() = %+v, %q", s, path)
	}
}
