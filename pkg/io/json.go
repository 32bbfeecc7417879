package io

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sardine/pkg/geom"
)

// point is a JSON [x, y] or [x, y, z] array.
type point [3]float64

func (p point) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64(p))
}

func (p *point) UnmarshalJSON(data []byte) error {
	var xs []float64
	if err := json.Unmarshal(data, &xs); err != nil {
		return err
	}
	if len(xs) != 2 && len(xs) != 3 {
		return fmt.Errorf("point must have 2 or 3 coordinates, got %d", len(xs))
	}
	*p = point{}
	copy(p[:], xs)
	return nil
}

func fromPoint(p geom.Point) point  { return point{p.X, p.Y, p.Z} }
func fromVec(v geom.Vec) point      { return point{v.X, v.Y, v.Z} }
func (p point) toPoint() geom.Point { return geom.Pt(p[0], p[1], p[2]) }
func (p point) vec() geom.Vec       { return geom.V(p[0], p[1], p[2]) }

func fromPoints(pts []geom.Point) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = fromPoint(p)
	}
	return out
}

func toPoints(pts []point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.toPoint()
	}
	return out
}

// curve is a polyline as vertices plus a closed flag.
type curve struct {
	Points []point `json:"points"`
	Closed bool    `json:"closed"`
}

func fromCurve(c geom.Curve) *curve {
	if geom.IsNil(c) {
		return nil
	}
	return &curve{Points: fromPoints(geom.Vertices(c)), Closed: c.IsClosed()}
}

func (c *curve) toCurve() geom.Curve {
	if c == nil || len(c.Points) == 0 {
		return nil
	}
	if c.Closed {
		return geom.NewClosedPolyline(toPoints(c.Points)...)
	}
	if len(c.Points) == 2 {
		return geom.Ln(c.Points[0].toPoint(), c.Points[1].toPoint())
	}
	return geom.NewPolyline(toPoints(c.Points)...)
}

type plane struct {
	Origin point `json:"origin"`
	XAxis  point `json:"x_axis"`
	YAxis  point `json:"y_axis"`
	ZAxis  point `json:"z_axis"`
}

func fromPlane(p geom.Plane) plane {
	return plane{
		Origin: fromPoint(p.Origin),
		XAxis:  fromVec(p.XAxis),
		YAxis:  fromVec(p.YAxis),
		ZAxis:  fromVec(p.ZAxis),
	}
}

func (p plane) toPlane() geom.Plane {
	return geom.Plane{Origin: p.Origin.toPoint(), XAxis: p.XAxis.vec(), YAxis: p.YAxis.vec(), ZAxis: p.ZAxis.vec()}
}
