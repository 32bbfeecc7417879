// Package pkg provides the core libraries for Sardine parking-lot layout.
//
// # Overview
//
// Sardine packs a surface parking lot into a site: given a closed boundary
// and the points where traffic enters, it lays a drive lane along the
// boundary with a row of stalls behind it, optionally fills the interior
// with double-loaded rows and aisles, and cuts axial roads through the lot
// along guide lines. The pkg directory is organized into four main areas:
//
//  1. Domain - [geom], [lot] and [solver]
//  2. Formats - [io] (site and lot JSON) and [config] (settings TOML)
//  3. Output - [render] and [render/sink]
//  4. Infrastructure - [pipeline], [cache], [store], [observability]
//
// # Architecture
//
// The typical data flow through Sardine:
//
//	site.json + settings.toml
//	         ↓
//	    [io] and [config] (decode the site, merge settings)
//	         ↓
//	    [solver] (validate, offset, place stalls, build roads, fill)
//	         ↓
//	    [lot] (the solved ParkingLot)
//	         ↓
//	    [render/sink] (SVG plan, lot JSON, road network DOT)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Solve a site and draw it:
//
//	import (
//	    pkgio "github.com/matzehuels/sardine/pkg/io"
//	    "github.com/matzehuels/sardine/pkg/render/sink"
//	    "github.com/matzehuels/sardine/pkg/solver"
//	)
//
//	// 1. Read the site
//	site, _ := pkgio.ImportSite("site.json")
//
//	// 2. Solve it
//	pl, _ := solver.New(nil).SolveRequest(solver.Request{
//	    Boundary:     site.Boundary,
//	    AccessPoints: site.AccessPoints,
//	    AxialLines:   site.AxialLines,
//	    Settings:     site.Settings,
//	})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(pl, sink.WithLabels())
//
// # Main Packages
//
// ## Domain
//
// [geom] - Planar curves in 3D space: lines, polylines, planes, and an
// offset engine that splits loops at narrow necks.
//
// [lot] - The data model: settings, access points, spots, roads, islands,
// warnings and the ParkingLot aggregate.
//
// [solver] - Boundary validation, access point resolution, stall placement
// along curves, road construction and interior fill.
//
// ## Formats
//
// [io] - JSON site documents (solve inputs) and lot documents (solve
// outputs).
//
// [config] - TOML settings files with partial overrides.
//
// ## Output
//
// [render/sink] - Site plan SVG, lot JSON, and the road network as Graphviz
// DOT or laid-out SVG.
//
// [render] - SVG to PDF and PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - The solve → render pipeline with caching, used by both the
// CLI and the HTTP API.
//
// [cache] - Content-addressed caches: file (CLI), Redis (API), null.
//
// [store] - Persistence of solved lots by ID: memory and MongoDB.
//
// [observability] - Hooks for solve, render, cache and HTTP events.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                   # All tests
//	go test ./pkg/solver/...                        # Specific package
//	SARDINE_TEST_REDIS_URL=redis://... go test ./pkg/cache/   # Redis cache
//	SARDINE_TEST_MONGO_URI=mongodb://... go test ./pkg/store/ # Mongo store
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/geom
// [lot]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/lot
// [solver]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/solver
// [io]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/config
// [render]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sardine/pkg/errors
package pkg
