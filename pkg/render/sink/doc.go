// Package sink renders a solved [lot.ParkingLot] to output formats.
//
// # SVG Plan
//
// [RenderSVG] draws the lot seen from above its boundary plane: the boundary
// outline, road corridors drawn at their true width, spot outlines coloured
// by type, and access points with an arrow pointing into the lot.
//
//	svg := sink.RenderSVG(pl, sink.WithWidth(1600), sink.WithLabels())
//
// # Road Network
//
// [ToDOT] describes the road network as an undirected Graphviz graph. Each
// road and each access point is a node; an edge joins two roads whose
// corridors come within reach of each other, and each access point to the
// nearest road. [RenderDOT] lays the graph out to SVG with Graphviz.
//
//	dot := sink.ToDOT(pl, sink.WithReach(1100))
//	svg, err := sink.RenderDOT(dot)
//
// # JSON
//
// [RenderJSON] writes the lot document understood by package io.
//
// [lot.ParkingLot]: github.com/matzehuels/sardine/pkg/lot.ParkingLot
package sink
