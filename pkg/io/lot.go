package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

type parkingLot struct {
	Boundary     *curve        `json:"boundary"`
	Skirt        *curve        `json:"skirt,omitempty"`
	Spots        []spot        `json:"spots"`
	Roads        []road        `json:"roads"`
	Islands      []island      `json:"islands"`
	AccessPoints []accessPoint `json:"access_points"`
	Warnings     []lot.Warning `json:"warnings,omitempty"`
	Stats        *lot.Stats    `json:"stats,omitempty"`
}

type spot struct {
	Index     int          `json:"index"`
	Type      lot.SpotType `json:"type"`
	Boundary  []point      `json:"boundary"`
	Width     float64      `json:"width"`
	Length    float64      `json:"length"`
	Angle     float64      `json:"angle"`
	BasePlane plane        `json:"base_plane"`
}

type road struct {
	Type       lot.RoadType `json:"type"`
	Width      float64      `json:"width"`
	Centerline *curve       `json:"centerline"`
	LeftEdge   *curve       `json:"left_edge,omitempty"`
	RightEdge  *curve       `json:"right_edge,omitempty"`
}

type island struct {
	Type     lot.IslandType `json:"type"`
	Boundary *curve         `json:"boundary"`
}

// WriteLot encodes a solved lot as JSON, including its summary stats.
// The output can be read back with [ReadLot].
func WriteLot(pl *lot.ParkingLot, w io.Writer) error {
	stats := pl.Stats()
	out := parkingLot{
		Boundary:     fromCurve(pl.Boundary),
		Skirt:        fromCurve(pl.Skirt),
		Spots:        make([]spot, len(pl.Spots)),
		Roads:        make([]road, len(pl.Roads)),
		Islands:      make([]island, len(pl.Islands)),
		AccessPoints: make([]accessPoint, len(pl.AccessPoints)),
		Warnings:     pl.Warnings,
		Stats:        &stats,
	}
	for i, s := range pl.Spots {
		out.Spots[i] = spot{
			Index:     s.Index,
			Type:      s.Type,
			Boundary:  fromPoints(geom.Vertices(s.Boundary)),
			Width:     s.Width,
			Length:    s.Length,
			Angle:     s.Angle,
			BasePlane: fromPlane(s.BasePlane),
		}
	}
	for i, r := range pl.Roads {
		out.Roads[i] = road{
			Type:       r.Type,
			Width:      r.Width,
			Centerline: fromCurve(r.Centerline),
			LeftEdge:   fromCurve(r.LeftEdge),
			RightEdge:  fromCurve(r.RightEdge),
		}
	}
	for i, is := range pl.Islands {
		out.Islands[i] = island{Type: is.Type, Boundary: fromCurve(is.Boundary)}
	}
	for i, ap := range pl.AccessPoints {
		width := ap.Width
		dir := fromVec(ap.Direction)
		out.AccessPoints[i] = accessPoint{
			Location:  fromPoint(ap.Location),
			Width:     &width,
			Direction: &dir,
			Resolved:  ap.Resolved,
		}
	}
	return encode(w, out)
}

// ExportLot writes a solved lot to a JSON file at path.
func ExportLot(pl *lot.ParkingLot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLot(pl, f)
}

// ReadLot decodes a lot written by [WriteLot]. The stats block is ignored;
// call [lot.ParkingLot.Stats] to recompute it.
func ReadLot(r io.Reader) (*lot.ParkingLot, error) {
	var data parkingLot
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode lot")
	}
	if data.Boundary == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "lot has no boundary")
	}

	pl := lot.New()
	pl.Boundary = data.Boundary.toCurve()
	pl.Skirt = data.Skirt.toCurve()
	pl.Warnings = data.Warnings
	for _, s := range data.Spots {
		pl.Spots = append(pl.Spots, lot.Spot{
			Index:     s.Index,
			Type:      s.Type,
			Boundary:  geomClosed(s.Boundary),
			Width:     s.Width,
			Length:    s.Length,
			Angle:     s.Angle,
			BasePlane: s.BasePlane.toPlane(),
		})
	}
	for i, r := range data.Roads {
		if r.Centerline == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "road %d has no centerline", i)
		}
		pl.Roads = append(pl.Roads, lot.Road{
			Type:       r.Type,
			Width:      r.Width,
			Centerline: r.Centerline.toCurve(),
			LeftEdge:   r.LeftEdge.toCurve(),
			RightEdge:  r.RightEdge.toCurve(),
		})
	}
	for _, is := range data.Islands {
		pl.Islands = append(pl.Islands, lot.Island{Type: is.Type, Boundary: is.Boundary.toCurve()})
	}
	for _, ap := range data.AccessPoints {
		a := lot.AccessPoint{Location: ap.Location.toPoint(), Resolved: ap.Resolved}
		if ap.Width != nil {
			a.Width = *ap.Width
		}
		if ap.Direction != nil {
			a.Direction = ap.Direction.vec()
		}
		pl.AccessPoints = append(pl.AccessPoints, a)
	}
	return pl, nil
}

// ImportLot reads a lot JSON file at path.
func ImportLot(path string) (*lot.ParkingLot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "lot file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	pl, err := ReadLot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pl, nil
}

func geomClosed(pts []point) *geom.Polyline {
	return geom.NewClosedPolyline(toPoints(pts)...)
}
