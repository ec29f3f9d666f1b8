// Package report renders a human-readable summary of a reconstruction for
// terminals.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-mcp/internal/placement"
)

// MaxWallRows caps the wall table. Remaining walls are summarized in one line.
const MaxWallRows = 20

// Summary renders res as a styled block. Colors are emitted unconditionally;
// write the result through lipgloss.Fprint to downsample for the terminal.
func Summary(res *floorplan.Result) string {
	if res == nil {
		return mutedStyle.Render("no result")
	}

	plan, r := res.Plan, res.Report

	lines := []string{
		titleStyle.Render("Floor plan"),
		"",
		row("walls", fmt.Sprintf("%d (from %d segments)", r.WallsResolved, r.SegmentsAccepted)),
		row("doors", fmt.Sprintf("%d", r.Doors)),
		row("windows", fmt.Sprintf("%d", r.Windows)),
		row("discarded", fmt.Sprintf("%d rectangles", r.RectanglesDiscarded)),
		row("size", fmt.Sprintf("%.1f x %.1f", plan.Dimensions.Width, plan.Dimensions.Height)),
		row("center", fmt.Sprintf("(%.1f, %.1f)", plan.Center.X, plan.Center.Y)),
	}

	if n := len(r.Rejections); n > 0 {
		lines = append(lines, "", warnStyle.Render(fmt.Sprintf("%d malformed primitives dropped", n)))
		for _, rej := range r.Rejections {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %s %d: %s", rej.Kind, rej.Index, rej.Reason)))
		}
	}

	if plan.IsEmpty() {
		lines = append(lines, "", mutedStyle.Render("plan is empty"))
	} else if len(plan.Walls) > 0 {
		lines = append(lines, "", sectionStyle.Render("Walls"))
		lines = append(lines, wallRows(plan)...)
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + valueStyle.Render(value)
}

func wallRows(plan floorplan.FloorPlan) []string {
	walls := placement.Walls(plan)

	longest := 0.0
	for _, w := range walls {
		longest = max(longest, w.Length)
	}

	out := make([]string, 0, min(len(walls), MaxWallRows)+1)
	for i, w := range walls {
		if i == MaxWallRows {
			out = append(out, mutedStyle.Render(fmt.Sprintf("  … %d more", len(walls)-MaxWallRows)))
			break
		}
		style := lipgloss.NewStyle().Foreground(lengthColor(w.Length / longest))
		out = append(out, style.Render(fmt.Sprintf("  #%-3d len %8.1f  at %6.1f°  mid (%.1f, %.1f)",
			w.Index, w.Length, w.AngleDegrees, w.Midpoint.X, w.Midpoint.Y)))
	}
	return out
}
