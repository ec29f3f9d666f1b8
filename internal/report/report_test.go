package report

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
)

func reconstruct(t *testing.T, in floorplan.Primitives) *floorplan.Result {
	t.Helper()
	res, err := floorplan.Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	return res
}

func TestSummary(t *testing.T) {
	res := reconstruct(t, floorplan.Primitives{
		Segments: []floorplan.Segment{
			floorplan.NewSegment(0, 0, 100, 0),
			floorplan.NewSegment(0, 4, 100, 4),
			floorplan.NewSegment(0, 0, 0, 50),
		},
		Rectangles: []floorplan.Rect{
			{X: 10, Y: 10, Width: 40, Height: 20},
			{X: 0, Y: 0, Width: 5, Height: 5},
		},
	})

	out := ansi.Strip(Summary(res))

	for _, want := range []string{
		"Floor plan",
		"2 (from 3 segments)",
		"windows    1",
		"discarded  1 rectangles",
		"400.0 x 200.0",
		"Walls",
		"len    400.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_Rejections(t *testing.T) {
	res := reconstruct(t, floorplan.Primitives{
		Segments: []floorplan.Segment{
			floorplan.NewSegment(0, 0, 100, 0),
			{X1: 3, Y1: 3, X2: 3, Y2: 3},
		},
	})

	out := ansi.Strip(Summary(res))

	if !strings.Contains(out, "1 malformed primitives dropped") {
		t.Errorf("summary missing rejection count:\n%s", out)
	}
	if !strings.Contains(out, "segment 1: zero length") {
		t.Errorf("summary missing rejection detail:\n%s", out)
	}
}

func TestSummary_Empty(t *testing.T) {
	out := ansi.Strip(Summary(reconstruct(t, floorplan.Primitives{})))
	if !strings.Contains(out, "plan is empty") {
		t.Errorf("summary should mention empty plan:\n%s", out)
	}

	if got := ansi.Strip(Summary(nil)); got != "no result" {
		t.Errorf("Summary(nil): got %q", got)
	}
}

func TestSummary_TruncatesWallTable(t *testing.T) {
	var segs []floorplan.Segment
	for i := 0; i < MaxWallRows+5; i++ {
		y := float64(i * 50)
		segs = append(segs, floorplan.NewSegment(0, y, 100, y))
	}

	out := ansi.Strip(Summary(reconstruct(t, floorplan.Primitives{Segments: segs})))

	if !strings.Contains(out, "5 more") {
		t.Errorf("summary should truncate the wall table:\n%s", out)
	}
}

func TestLengthColor(t *testing.T) {
	tests := []struct {
		t    float64
		want string
	}{
		{0, shortColor.Hex()},
		{-1, shortColor.Hex()},
		{math.NaN(), shortColor.Hex()},
		{1, longColor.Hex()},
		{3, longColor.Hex()},
	}

	for _, tt := range tests {
		r, g, b, _ := lengthColor(tt.t).RGBA()
		got := mustHex(tt.want)
		wr, wg, wb, _ := got.RGBA()
		if diff(r, wr) > 256 || diff(g, wg) > 256 || diff(b, wb) > 256 {
			t.Errorf("lengthColor(%v): got (%d,%d,%d), want %s", tt.t, r>>8, g>>8, b>>8, tt.want)
		}
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
