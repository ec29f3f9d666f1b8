package floorplan

// Classification is the result of ClassifyOpenings.
type Classification struct {
	Windows   []Opening `json:"windows"`
	Doors     []Opening `json:"doors"`
	Discarded int       `json:"discarded"`
}

// ClassifyOpenings sorts candidate rectangles into windows and doors.
//
// Each rectangle is tested against Params.WindowBand first and
// Params.DoorBand second; the first band that contains it decides its kind,
// and a rectangle in neither is discarded. With the default bands every
// rectangle in the (50,100)×(10,50) overlap therefore becomes a window.
// Output order follows input order within each kind.
func ClassifyOpenings(rects []Rect, p Params) Classification {
	c := Classification{
		Windows: []Opening{},
		Doors:   []Opening{},
	}
	for _, r := range rects {
		switch {
		case p.WindowBand.Contains(r.Width, r.Height):
			c.Windows = append(c.Windows, newOpening(r, Window))
		case p.DoorBand.Contains(r.Width, r.Height):
			c.Doors = append(c.Doors, newOpening(r, Door))
		default:
			c.Discarded++
		}
	}
	return c
}

func newOpening(r Rect, kind OpeningKind) Opening {
	return Opening{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Kind: kind}
}
