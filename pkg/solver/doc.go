// Package solver computes parking-lot layouts.
//
// A solve runs a fixed sequence of stages, each a plain function of its
// inputs:
//
//  1. Validate the boundary ([Validate])
//  2. Snap access points onto the boundary ([ResolveAccessPoints])
//  3. Offset the boundary inward by the skirt clearance ([OffsetLoops])
//  4. Build the perimeter road along the skirt ([BuildPerimeterRoads])
//  5. Place the perimeter spot row along the skirt ([PlaceAlongCurve])
//  6. Optionally fill the interior with rows of spots ([FillRegion])
//
// [Solve] runs all of them and returns a fresh [lot.ParkingLot]. Nothing in
// this package keeps state between calls, so independent solves may run
// concurrently.
//
// # Winding
//
// Closed curves are normalized to wind counter-clockwise around their up
// normal before any side-dependent computation. For a counter-clockwise
// loop the left side of travel is the inside, so inward normals are
// normal × tangent and positive offsets shrink the loop.
package solver
