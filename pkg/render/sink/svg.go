package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb"

	"github.com/matzehuels/sardine/pkg/geom"
	"github.com/matzehuels/sardine/pkg/lot"
)

const (
	// DefaultWidth is the default drawing width in pixels.
	DefaultWidth = 1200
	// DefaultMargin is the blank border around the drawing in pixels.
	DefaultMargin = 20
)

var spotFill = map[lot.SpotType]string{
	lot.SpotStandard: "#ffffff",
	lot.SpotHandicap: "#cfe3ff",
	lot.SpotElderly:  "#fde8c8",
	lot.SpotBike:     "#e0f2d8",
	lot.SpotEV:       "#d8f3f0",
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  int
	margin int
	labels bool
	skirt  bool
	edges  bool
}

func WithWidth(px int) SVGOption  { return func(r *svgRenderer) { r.width = px } }
func WithMargin(px int) SVGOption { return func(r *svgRenderer) { r.margin = px } }
func WithLabels() SVGOption       { return func(r *svgRenderer) { r.labels = true } }
func WithSkirt() SVGOption        { return func(r *svgRenderer) { r.skirt = true } }
func WithRoadEdges() SVGOption    { return func(r *svgRenderer) { r.edges = true } }

// RenderSVG draws a plan of pl. A lot without a usable boundary yields an
// empty drawing.
func RenderSVG(pl *lot.ParkingLot, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 2*r.margin {
		r.width = 2*r.margin + 1
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	pr, ok := newProjector(pl, r.width, r.margin)
	if !ok {
		canvas.Start(r.width, 2*r.margin)
		canvas.End()
		return buf.Bytes()
	}

	canvas.Start(r.width, pr.height())
	canvas.Title("Parking lot")
	st := pl.Stats()
	canvas.Desc(fmt.Sprintf("%d spots, %d roads, %.0f cm² per spot", st.Spots, st.Roads, st.AreaPerSpot))

	x, y := pr.path(pl.Boundary)
	canvas.Polygon(x, y, `id="boundary"`, "fill:#f4f4f0;stroke:#222;stroke-width:2")

	canvas.Gid("roads")
	for i, road := range pl.Roads {
		r.drawRoad(canvas, pr, i, road)
	}
	canvas.Gend()

	if r.skirt && !geom.IsNil(pl.Skirt) {
		x, y := pr.path(pl.Skirt)
		canvas.Polygon(x, y, `id="skirt"`, "fill:none;stroke:#888;stroke-width:1;stroke-dasharray:6,4")
	}

	canvas.Gid("spots")
	for _, sp := range pl.Spots {
		r.drawSpot(canvas, pr, sp)
	}
	canvas.Gend()

	canvas.Gid("access")
	for i, ap := range pl.AccessPoints {
		drawAccess(canvas, pr, i, ap)
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) drawRoad(canvas *svg.SVG, pr projector, i int, road lot.Road) {
	if geom.IsNil(road.Centerline) {
		return
	}
	style := fmt.Sprintf("fill:none;stroke:#c8c8c8;stroke-opacity:0.7;stroke-linejoin:round;stroke-width:%.1f", road.Width*pr.scale)
	id := fmt.Sprintf(`id="road-%d"`, i)
	class := fmt.Sprintf(`class="road %s"`, road.Type)
	x, y := pr.path(road.Centerline)
	if road.Centerline.IsClosed() {
		canvas.Polygon(x, y, id, class, style)
	} else {
		canvas.Polyline(x, y, id, class, style)
	}
	if !r.edges {
		return
	}
	for _, e := range []geom.Curve{road.LeftEdge, road.RightEdge} {
		if geom.IsNil(e) {
			continue
		}
		x, y := pr.path(e)
		canvas.Polyline(x, y, "fill:none;stroke:#666;stroke-width:1;stroke-dasharray:4,3")
	}
}

func (r *svgRenderer) drawSpot(canvas *svg.SVG, pr projector, sp lot.Spot) {
	if sp.Boundary == nil {
		return
	}
	fill, ok := spotFill[sp.Type]
	if !ok {
		fill = spotFill[lot.SpotStandard]
	}
	x, y := pr.path(sp.Boundary)
	canvas.Polygon(x, y,
		fmt.Sprintf(`id="spot-%d"`, sp.Index),
		fmt.Sprintf(`class="spot %s"`, sp.Type),
		fmt.Sprintf("fill:%s;stroke:#333;stroke-width:1", fill))
	if r.labels {
		cx, cy := pr.centroid(sp.Boundary.Vertices())
		size := math.Max(6, 0.3*sp.Width*pr.scale)
		canvas.Text(cx, cy, fmt.Sprint(sp.Index),
			fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:%.0fpx;fill:#555", size))
	}
}

func drawAccess(canvas *svg.SVG, pr projector, i int, ap lot.AccessPoint) {
	x, y := pr.xy(ap.Location)
	canvas.Circle(x, y, 5, fmt.Sprintf(`id="access-%d"`, i), "fill:#d33")
	if !ap.Resolved || ap.Direction.IsZero() {
		return
	}
	reach := math.Max(ap.Width/2, 10/pr.scale)
	tx, ty := pr.xy(ap.Location.Translate(ap.Direction.Mul(reach)))
	canvas.Line(x, y, tx, ty, "stroke:#d33;stroke-width:2")
}

// projector maps world points onto the drawing, y up.
type projector struct {
	plane  geom.Plane
	bound  orb.Bound
	scale  float64
	margin int
}

func newProjector(pl *lot.ParkingLot, width, margin int) (projector, bool) {
	if pl == nil || geom.IsNil(pl.Boundary) {
		return projector{}, false
	}
	pts := geom.Vertices(pl.Boundary)
	fit, ok := pl.Boundary.Plane()
	if !ok || len(pts) == 0 {
		return projector{}, false
	}
	plane := geom.PlaneFromNormal(pts[0], fit.Normal())

	var mp orb.MultiPoint
	for _, p := range pts {
		mp = append(mp, plane.ToLocal(p))
	}
	for _, sp := range pl.Spots {
		if sp.Boundary == nil {
			continue
		}
		for _, p := range sp.Boundary.Vertices() {
			mp = append(mp, plane.ToLocal(p))
		}
	}
	b := mp.Bound()
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w <= 0 && h <= 0 {
		return projector{}, false
	}
	scale := float64(width-2*margin) / math.Max(w, h)
	if w > 0 {
		scale = float64(width-2*margin) / w
	}
	return projector{plane: plane, bound: b, scale: scale, margin: margin}, true
}

func (p projector) height() int {
	return int(math.Ceil((p.bound.Max[1]-p.bound.Min[1])*p.scale)) + 2*p.margin
}

func (p projector) xy(pt geom.Point) (int, int) {
	q := p.plane.ToLocal(pt)
	x := float64(p.margin) + (q[0]-p.bound.Min[0])*p.scale
	y := float64(p.margin) + (p.bound.Max[1]-q[1])*p.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (p projector) path(c geom.Curve) ([]int, []int) {
	pts := geom.Vertices(c)
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, pt := range pts {
		xs[i], ys[i] = p.xy(pt)
	}
	return xs, ys
}

func (p projector) centroid(pts []geom.Point) (int, int) {
	var c geom.Vec
	for _, pt := range pts {
		c = c.Add(pt.Vec())
	}
	c = c.Mul(1 / float64(len(pts)))
	return p.xy(geom.Pt(c.X, c.Y, c.Z))
}
