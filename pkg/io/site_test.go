package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

const siteJSON = `{
  "name": "north-lot",
  "boundary": [[0, 0], [6000, 0], [6000, 4000], [0, 4000], [0, 0]],
  "access_points": [
    {"location": [3000, 0]},
    {"location": [6000, 2000, 0], "width": 450}
  ],
  "axial_lines": [
    [[3000, -100], [3000, 4100]]
  ],
  "settings": {"spot_angle": 60, "peripheral_road_width": 700, "perimeter_mode": "one_side"}
}`

func TestReadSite(t *testing.T) {
	s, err := ReadSite(strings.NewReader(siteJSON))
	if err != nil {
		t.Fatalf("ReadSite() error = %v", err)
	}
	if s.Name != "north-lot" {
		t.Errorf("Name = %q", s.Name)
	}
	if !s.Boundary.IsClosed() {
		t.Error("boundary should be closed")
	}
	if got := len(geom.Vertices(s.Boundary)); got != 4 {
		t.Errorf("boundary vertices = %d, want 4", got)
	}

	want := lot.DefaultSettings()
	want.SpotAngle = 60
	want.PeripheralRoadWidth = 700
	want.AxialRoadWidth = 700
	want.AisleWidth = 700
	want.PerimeterMode = lot.PerimeterOneSide
	if s.Settings != want {
		t.Errorf("Settings = %+v\nwant %+v", s.Settings, want)
	}

	wantAPs := []lot.AccessPoint{
		lot.NewAccessPoint(geom.Pt(3000, 0, 0), 700),
		lot.NewAccessPoint(geom.Pt(6000, 2000, 0), 450),
	}
	if diff := cmp.Diff(wantAPs, s.AccessPoints); diff != "" {
		t.Errorf("AccessPoints mismatch (-want +got):\n%s", diff)
	}

	if len(s.AxialLines) != 1 {
		t.Fatalf("AxialLines = %d, want 1", len(s.AxialLines))
	}
	if got := s.AxialLines[0].Length(); got != 4200 {
		t.Errorf("axial line length = %v, want 4200", got)
	}
}

func TestReadSiteWithBase(t *testing.T) {
	base := lot.DefaultSettings()
	base.SpotWidth = 230
	s, err := ReadSiteWith(strings.NewReader(`{"boundary": [[0,0],[10,0],[10,10]]}`), base)
	if err != nil {
		t.Fatalf("ReadSiteWith() error = %v", err)
	}
	if s.Settings != base {
		t.Errorf("Settings = %+v, want base", s.Settings)
	}
	if !s.Overrides.IsZero() {
		t.Error("site without settings should have no overrides")
	}
	if s.AccessPoints == nil {
		t.Error("AccessPoints should be empty, not nil")
	}
}

func TestReadSiteOpenBoundary(t *testing.T) {
	s, err := ReadSite(strings.NewReader(`{"boundary": [[0,0],[10,0],[10,10]], "closed": false}`))
	if err != nil {
		t.Fatalf("ReadSite() error = %v", err)
	}
	if s.Boundary.IsClosed() {
		t.Error("boundary should be open")
	}
}

func TestReadSiteErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"boundary": [`},
		{"unknown field", `{"boundary": [[0,0],[1,0],[1,1]], "bondary": []}`},
		{"short boundary", `{"boundary": [[0,0],[1,0]]}`},
		{"bad point", `{"boundary": [[0,0],[1,0],[1]]}`},
		{"overflowing coordinate", `{"boundary": [[0,0],[1e400,0],[1,1]]}`},
		{"bad width", `{"boundary": [[0,0],[1,0],[1,1]], "access_points": [{"location": [0,0], "width": 0}]}`},
		{"short axial", `{"boundary": [[0,0],[1,0],[1,1]], "axial_lines": [[[0,0]]]}`},
		{"bad enum", `{"boundary": [[0,0],[1,0],[1,1]], "settings": {"perimeter_mode": "triple"}}`},
		{"unknown setting", `{"boundary": [[0,0],[1,0],[1,1]], "settings": {"spot_depth": 5}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSite(strings.NewReader(tt.json))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadSite() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestSiteRoundTrip(t *testing.T) {
	s, err := ReadSite(strings.NewReader(siteJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSite(s, &buf); err != nil {
		t.Fatalf("WriteSite() error = %v", err)
	}
	if strings.Contains(buf.String(), "spot_width") {
		t.Errorf("WriteSite() should only write overrides:\n%s", buf.String())
	}
	got, err := ReadSite(&buf)
	if err != nil {
		t.Fatalf("ReadSite() of written site error = %v", err)
	}
	if got.Settings != s.Settings {
		t.Errorf("Settings = %+v, want %+v", got.Settings, s.Settings)
	}
	if diff := cmp.Diff(geom.Vertices(s.Boundary), geom.Vertices(got.Boundary)); diff != "" {
		t.Errorf("boundary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.AccessPoints, got.AccessPoints); diff != "" {
		t.Errorf("access points mismatch (-want +got):\n%s", diff)
	}
}

func TestImportExportSite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	if err := os.WriteFile(path, []byte(siteJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ImportSite(path)
	if err != nil {
		t.Fatalf("ImportSite() error = %v", err)
	}

	out := filepath.Join(dir, "out.json")
	if err := ExportSite(s, out); err != nil {
		t.Fatalf("ExportSite() error = %v", err)
	}
	if _, err := ImportSite(out); err != nil {
		t.Errorf("ImportSite(exported) error = %v", err)
	}

	_, err = ImportSite(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportSite(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
