// Package floorplan reconstructs a normalized floor-plan model from the raw
// geometric primitives recovered from a scanned floor-plan image.
//
// The package is a pure, synchronous, in-memory transformation. It never
// decodes images, draws, persists or performs I/O; callers hand it line
// segments (candidate walls) and axis-aligned rectangles (candidate openings)
// and receive a FloorPlan value back.
//
// # Pipeline
//
// Reconstruction runs four stages, each depending only on the output of the
// stage before it:
//
//  1. Intake: validates the primitives, drops malformed detections and rejects
//     invalid rectangle shapes (see Intake).
//  2. Wall resolution: collapses duplicate parallel edge detections of the same
//     physical wall into one interior representative (see ResolveWalls).
//  3. Opening classification: sorts rectangles into windows and doors by size
//     bands, window band first (see ClassifyOpenings).
//  4. Normalization: centers the combined bounding box on the origin, scales
//     coordinates and flips the Y axis (see Normalize).
//
// Stages 2 and 3 are independent of each other.
//
// # Coordinate Systems
//
// Input primitives use source (image) coordinates:
//   - Origin (0, 0) at the top-left corner of the image
//   - X increases rightward
//   - Y increases downward
//
// A FloorPlan's walls and openings use scene coordinates:
//   - Origin at the center of the combined bounding box
//   - Distances multiplied by Params.Scale
//   - Y increases upward
//
// FloorPlan.Center is reported in source units, FloorPlan.Dimensions in scene
// units. Downstream placement code sizes its ground plane from Dimensions.
//
// # Concurrency
//
// All functions are free of shared state. An Engine is immutable after
// NewEngine and may be used from any number of goroutines.
//
// # Complexity
//
// Wall resolution is quadratic in the number of segments for small inputs and
// switches to an R-tree candidate search at Params.IndexThreshold. Inputs above
// Params.MaxSegments are rejected with ErrTooManySegments.
package floorplan
