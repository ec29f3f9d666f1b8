package report

import (
	"image/color"
	"math"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

var (
	titleStyle   = lipgloss.NewStyle().Foreground(c("#00ffc8")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(c("#ddaa44"))
	valueStyle   = lipgloss.NewStyle().Foreground(c("#e0e0e0"))
	warnStyle    = lipgloss.NewStyle().Foreground(c("#ff6655")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(c("#666666")).Italic(true)
	sectionStyle = lipgloss.NewStyle().Foreground(c("#00ccee")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("#00d4a0")).
			Padding(0, 1)
)

// Wall rows shade from shortColor to longColor by relative length.
var shortColor, longColor = mustHex("#1a6a4a"), mustHex("#66ffee")

func mustHex(s string) colorful.Color {
	col, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return col
}

// lengthColor blends in Lab space; t is clamped to [0,1].
func lengthColor(t float64) color.Color {
	switch {
	case t < 0 || math.IsNaN(t):
		t = 0
	case t > 1:
		t = 1
	}
	return shortColor.BlendLab(longColor, t).Clamped()
}
