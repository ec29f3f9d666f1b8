package floorplan

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"` // horizontal position
	Y float64 `json:"y"` // vertical position; down in source space, up in scene space
}

// Dimensions is the width and height of a plan in scene units.
type Dimensions struct {
	Width  float64 `json:"width"`  // X extent in scene units
	Height float64 `json:"height"` // Y extent in scene units
}

// Segment is a line detected as a candidate wall.
//
// Length is derived from the endpoints when the segment is built with
// NewSegment and is not updated afterwards. Segments decoded from JSON carry
// whatever length the sender supplied; Intake rebuilds them so the value is
// always consistent.
type Segment struct {
	// Start point
	X1 float64 `json:"x1" validate:"finite,coord"`
	Y1 float64 `json:"y1" validate:"finite,coord"`

	// End point
	X2 float64 `json:"x2" validate:"finite,coord"`
	Y2 float64 `json:"y2" validate:"finite,coord"`

	// Euclidean distance between the endpoints
	Length float64 `json:"length"`
}

// NewSegment builds a segment and computes its length.
func NewSegment(x1, y1, x2, y2 float64) Segment {
	return Segment{
		X1:     x1,
		Y1:     y1,
		X2:     x2,
		Y2:     y2,
		Length: planar.Distance(orb.Point{x1, y1}, orb.Point{x2, y2}),
	}
}

// Start returns the first endpoint.
func (s Segment) Start() Point { return Point{X: s.X1, Y: s.Y1} }

// End returns the second endpoint.
func (s Segment) End() Point { return Point{X: s.X2, Y: s.Y2} }

// Rect is an axis-aligned bounding rectangle reported by the vision front-end.
// (X, Y) is the top-left corner in source coordinates.
type Rect struct {
	X      float64 `json:"x" validate:"finite,coord"`           // left edge
	Y      float64 `json:"y" validate:"finite,coord"`           // top edge
	Width  float64 `json:"width" validate:"finite,gt=0,coord"`  // extent along X, must be positive
	Height float64 `json:"height" validate:"finite,gt=0,coord"` // extent along Y, must be positive
}

// OpeningKind identifies the category of a classified opening.
type OpeningKind string

const (
	Door   OpeningKind = "door"
	Window OpeningKind = "window"
)

// Opening is a classified rectangular feature.
//
// In source coordinates (X, Y) is the top-left corner and the opening spans
// [X, X+Width] × [Y, Y+Height]. After normalization (X, Y) is the image of
// that same corner, which is now the upper-left corner because Y points up,
// so the opening spans [X, X+Width] × [Y-Height, Y].
type Opening struct {
	X      float64     `json:"x" validate:"finite,coord"`           // anchor corner X
	Y      float64     `json:"y" validate:"finite,coord"`           // anchor corner Y
	Width  float64     `json:"width" validate:"finite,gt=0,coord"`  // always positive
	Height float64     `json:"height" validate:"finite,gt=0,coord"` // always positive
	Kind   OpeningKind `json:"kind"`                                // door or window
}

// corners returns the source-space top-left and bottom-right corners.
func (o Opening) corners() (Point, Point) {
	return Point{X: o.X, Y: o.Y}, Point{X: o.X + o.Width, Y: o.Y + o.Height}
}

// FloorPlan is the reconstructed, normalized plan.
type FloorPlan struct {
	// Entities in scene coordinates (Y up, origin at the bounding box midpoint)
	Walls   []Segment `json:"walls"`
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`

	// Bounding box midpoint in source units, before scaling
	Center Point `json:"center"`

	// Bounding box size in scene units (source size times scale)
	Dimensions Dimensions `json:"dimensions"`
}

// IsEmpty reports whether the plan was built from no entities at all.
// Callers must check this before sizing anything from Dimensions.
func (p FloorPlan) IsEmpty() bool {
	return len(p.Walls) == 0 && len(p.Doors) == 0 && len(p.Windows) == 0
}

// Extent returns the scene-space bounding box of every wall and opening.
// An empty plan yields an empty orb.Bound at the origin.
func (p FloorPlan) Extent() orb.Bound {
	if p.IsEmpty() {
		return orb.Bound{}
	}
	var pts orb.MultiPoint
	for _, w := range p.Walls {
		pts = append(pts, orb.Point{w.X1, w.Y1}, orb.Point{w.X2, w.Y2})
	}
	for _, o := range p.Doors {
		pts = append(pts, orb.Point{o.X, o.Y}, orb.Point{o.X + o.Width, o.Y - o.Height})
	}
	for _, o := range p.Windows {
		pts = append(pts, orb.Point{o.X, o.Y}, orb.Point{o.X + o.Width, o.Y - o.Height})
	}
	return pts.Bound()
}

// Primitives is the raw output of the vision front-end.
type Primitives struct {
	Segments   []Segment `json:"segments"`   // candidate walls
	Rectangles []Rect    `json:"rectangles"` // candidate doors and windows
}
