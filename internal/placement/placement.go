// Package placement derives the values a 3D presentation layer needs to lay
// out a reconstructed floor plan: where each wall sits, which way it faces,
// and how large the ground plane is.
//
// All inputs and outputs are in scene coordinates (Y up, origin at the plan
// center). Angles are measured counter-clockwise from the +X axis.
package placement

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
)

// ErrEmptyPlan is returned by Floor for a plan with no entities.
var ErrEmptyPlan = errors.New("floor plan is empty")

// WallPlacement positions one wall.
type WallPlacement struct {
	Index        int             `json:"index"`
	Midpoint     floorplan.Point `json:"midpoint"`
	Length       float64         `json:"length"`
	Angle        float64         `json:"angle"`
	AngleDegrees float64         `json:"angle_degrees"`
}

// OpeningPlacement positions one door or window by its center.
type OpeningPlacement struct {
	Index  int                   `json:"index"`
	Kind   floorplan.OpeningKind `json:"kind"`
	Center floorplan.Point       `json:"center"`
	Width  float64               `json:"width"`
	Height float64               `json:"height"`
}

// FloorPlane is the ground plane under a plan, centered on the origin.
type FloorPlane struct {
	Center floorplan.Point `json:"center"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
}

// Walls computes a placement for every wall in plan order.
func Walls(plan floorplan.FloorPlan) []WallPlacement {
	out := make([]WallPlacement, 0, len(plan.Walls))
	for i, w := range plan.Walls {
		a := orb.Point{w.X1, w.Y1}
		b := orb.Point{w.X2, w.Y2}
		mid := orb.LineString{a, b}.Bound().Center()
		angle := math.Atan2(w.Y2-w.Y1, w.X2-w.X1)

		out = append(out, WallPlacement{
			Index:        i,
			Midpoint:     floorplan.Point{X: mid.X(), Y: mid.Y()},
			Length:       planar.Distance(a, b),
			Angle:        angle,
			AngleDegrees: math.Round(angle*180/math.Pi*10) / 10,
		})
	}
	return out
}

// Openings computes a placement for every door, then every window.
func Openings(plan floorplan.FloorPlan) []OpeningPlacement {
	out := make([]OpeningPlacement, 0, len(plan.Doors)+len(plan.Windows))
	for _, group := range [][]floorplan.Opening{plan.Doors, plan.Windows} {
		for i, o := range group {
			out = append(out, OpeningPlacement{
				Index: i,
				Kind:  o.Kind,
				// Scene openings extend down from (X, Y).
				Center: floorplan.Point{X: o.X + o.Width/2, Y: o.Y - o.Height/2},
				Width:  o.Width,
				Height: o.Height,
			})
		}
	}
	return out
}

// Floor returns the ground plane sized to plan.Dimensions.
func Floor(plan floorplan.FloorPlan) (FloorPlane, error) {
	if plan.IsEmpty() {
		return FloorPlane{}, ErrEmptyPlan
	}
	return FloorPlane{
		Width:  plan.Dimensions.Width,
		Height: plan.Dimensions.Height,
	}, nil
}
