// Package io reads sites and reads and writes solved lots as JSON.
//
// # Site Format
//
// A site is the input to a solve: a boundary polygon, optional access points
// and axial road lines, and optional settings overrides.
//
//	{
//	  "name": "north-lot",
//	  "boundary": [[0, 0], [6000, 0], [6000, 4000], [0, 4000]],
//	  "access_points": [
//	    {"location": [3000, 0]}
//	  ],
//	  "axial_lines": [
//	    [[3000, -100], [3000, 4100]]
//	  ],
//	  "settings": {"spot_angle": 60, "fill_interior": true}
//	}
//
// Points are [x, y] or [x, y, z] arrays in centimetres. The boundary is
// closed unless "closed" is false; a trailing copy of the first point is
// ignored. Access points without a width get the peripheral road width of
// the effective settings. Settings use the same keys as the TOML settings
// file (see package config).
//
// Use [ImportSite] to read a site from a file path, or [ReadSite] to read
// from any io.Reader. [WriteSite] and [ExportSite] write one back.
//
// # Lot Format
//
// [WriteLot] and [ExportLot] write a solved lot: boundary, skirt, spots,
// roads, islands, resolved access points, warnings and summary stats. Enum
// values are written by name ("standard", "perimeter", ...). [ReadLot] and
// [ImportLot] decode the same format so a lot can be rendered again without
// re-solving.
//
// The returned values are independent of the reader. ReadSite and ReadLot do
// not close r.
package io
