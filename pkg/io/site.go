package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sardine/pkg/config"
	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

// Site is a decoded solve input.
type Site struct {
	Name         string
	Boundary     geom.Curve
	AccessPoints []lot.AccessPoint
	AxialLines   []geom.Curve
	// Settings are the defaults (or the base passed to [ReadSiteWith])
	// with the site's overrides applied.
	Settings lot.Settings
	// Overrides are the settings the site file named explicitly.
	Overrides config.Overlay
}

type site struct {
	Name         string         `json:"name,omitempty"`
	Boundary     []point        `json:"boundary"`
	Closed       *bool          `json:"closed,omitempty"`
	AccessPoints []accessPoint  `json:"access_points,omitempty"`
	AxialLines   [][]point      `json:"axial_lines,omitempty"`
	Settings     config.Overlay `json:"settings,omitzero"`
}

type accessPoint struct {
	Location  point    `json:"location"`
	Width     *float64 `json:"width,omitempty"`
	Direction *point   `json:"direction,omitempty"`
	Resolved  bool     `json:"resolved,omitempty"`
}

// ReadSite decodes a JSON site from r over the default settings.
func ReadSite(r io.Reader) (*Site, error) {
	return ReadSiteWith(r, lot.DefaultSettings())
}

// ReadSiteWith decodes a JSON site from r, applying the site's settings
// overrides to base.
//
// ReadSiteWith returns an INVALID_FORMAT error if the JSON is malformed, the
// boundary has fewer than three points, an axial line has fewer than two
// points, or an access point width is not positive. It does not validate the
// boundary geometry; the solver does that.
func ReadSiteWith(r io.Reader, base lot.Settings) (*Site, error) {
	var data site
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode site")
	}
	if len(data.Boundary) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "boundary needs at least 3 points, got %d", len(data.Boundary))
	}

	out := &Site{
		Name:         data.Name,
		Settings:     data.Settings.Apply(base),
		Overrides:    data.Settings,
		AccessPoints: make([]lot.AccessPoint, 0, len(data.AccessPoints)),
	}
	pts := toPoints(data.Boundary)
	if data.Closed == nil || *data.Closed {
		out.Boundary = geom.NewClosedPolyline(pts...)
	} else {
		out.Boundary = geom.NewPolyline(pts...)
	}

	for i, ap := range data.AccessPoints {
		width := out.Settings.PeripheralRoadWidth
		if ap.Width != nil {
			if *ap.Width <= 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "access point %d: width must be positive, got %g", i, *ap.Width)
			}
			width = *ap.Width
		}
		out.AccessPoints = append(out.AccessPoints, lot.NewAccessPoint(ap.Location.toPoint(), width))
	}

	for i, line := range data.AxialLines {
		if len(line) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "axial line %d needs at least 2 points, got %d", i, len(line))
		}
		if len(line) == 2 {
			out.AxialLines = append(out.AxialLines, geom.Ln(line[0].toPoint(), line[1].toPoint()))
			continue
		}
		out.AxialLines = append(out.AxialLines, geom.NewPolyline(toPoints(line)...))
	}
	return out, nil
}

// ImportSite reads a JSON site file at path over the default settings.
func ImportSite(path string) (*Site, error) {
	return ImportSiteWith(path, lot.DefaultSettings())
}

// ImportSiteWith reads a JSON site file at path over base. A missing file
// returns a FILE_NOT_FOUND error.
func ImportSiteWith(path string, base lot.Settings) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "site file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := ReadSiteWith(f, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSite encodes s as JSON. Only the explicit overrides are written, so a
// site read and written again keeps following the caller's defaults.
func WriteSite(s *Site, w io.Writer) error {
	out := site{
		Name:     s.Name,
		Boundary: fromPoints(geom.Vertices(s.Boundary)),
		Settings: s.Overrides,
	}
	if !geom.IsNil(s.Boundary) && !s.Boundary.IsClosed() {
		closed := false
		out.Closed = &closed
	}
	for _, ap := range s.AccessPoints {
		width := ap.Width
		out.AccessPoints = append(out.AccessPoints, accessPoint{Location: fromPoint(ap.Location), Width: &width})
	}
	for _, l := range s.AxialLines {
		out.AxialLines = append(out.AxialLines, fromPoints(geom.Vertices(l)))
	}
	return encode(w, out)
}

// ExportSite writes s to a JSON file at path.
func ExportSite(s *Site, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSite(s, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
