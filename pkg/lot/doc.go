// Package lot defines the parking-lot data model shared by the solver, the
// file formats and the renderers.
//
// The model mirrors what a layout solve consumes and produces:
//
//   - [Settings]: spot and road dimensions in centimetres, read-only input
//   - [AccessPoint]: a vehicle opening on the boundary with an inward direction
//   - [Spot], [Road], [Island]: placed elements owned by a result
//   - [ParkingLot]: the result of one solve
//
// Types in this package carry no behaviour beyond validation and simple
// accessors; all geometry work happens in the solver.
package lot
