package floorplan

import (
	"github.com/paulmach/orb"
)

// Normalize centers, scales and flips resolved walls and classified openings
// into scene coordinates.
//
// The bounding box is taken over both endpoints of every wall and the
// top-left and bottom-right corners of every opening. Each coordinate is then
// mapped as
//
//	x' =  (x - center.x) * scale
//	y' = -(y - center.y) * scale
//
// so the box midpoint lands on the origin and Y points up. The returned
// Center stays in source units; Dimensions is the box size times scale.
//
// With no entities at all the result is a degenerate plan: empty slices,
// zero center and zero dimensions (see FloorPlan.IsEmpty).
func Normalize(walls []Segment, doors, windows []Opening, scale float64) FloorPlan {
	var pts orb.MultiPoint
	for _, w := range walls {
		pts = append(pts, orb.Point{w.X1, w.Y1}, orb.Point{w.X2, w.Y2})
	}
	for _, group := range [][]Opening{doors, windows} {
		for _, o := range group {
			tl, br := o.corners()
			pts = append(pts, orb.Point{tl.X, tl.Y}, orb.Point{br.X, br.Y})
		}
	}

	if len(pts) == 0 {
		return FloorPlan{
			Walls:   []Segment{},
			Doors:   []Opening{},
			Windows: []Opening{},
		}
	}

	bound := pts.Bound()
	mid := bound.Center()
	center := Point{X: mid.X(), Y: mid.Y()}
	t := transform{center: center, scale: scale}

	plan := FloorPlan{
		Walls:   make([]Segment, 0, len(walls)),
		Doors:   make([]Opening, 0, len(doors)),
		Windows: make([]Opening, 0, len(windows)),
		Center:  center,
		Dimensions: Dimensions{
			Width:  (bound.Max.X() - bound.Min.X()) * scale,
			Height: (bound.Max.Y() - bound.Min.Y()) * scale,
		},
	}
	for _, w := range walls {
		plan.Walls = append(plan.Walls, t.segment(w))
	}
	for _, d := range doors {
		plan.Doors = append(plan.Doors, t.opening(d))
	}
	for _, w := range windows {
		plan.Windows = append(plan.Windows, t.opening(w))
	}
	return plan
}

type transform struct {
	center Point
	scale  float64
}

func (t transform) x(v float64) float64 { return (v - t.center.X) * t.scale }
func (t transform) y(v float64) float64 { return (t.center.Y - v) * t.scale }

func (t transform) segment(s Segment) Segment {
	return NewSegment(t.x(s.X1), t.y(s.Y1), t.x(s.X2), t.y(s.Y2))
}

func (t transform) opening(o Opening) Opening {
	return Opening{
		X:      t.x(o.X),
		Y:      t.y(o.Y),
		Width:  o.Width * t.scale,
		Height: o.Height * t.scale,
		Kind:   o.Kind,
	}
}
