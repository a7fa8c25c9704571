package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stringlog/internal/ui/theme"
)

// Bar is one labelled column of a BarChart.
type Bar struct {
	Label string
	Value float64
}

// BarChart renders vertical bars scaled to the tallest value, one text row per step.
func BarChart(bars []Bar, height int) string {
	if len(bars) == 0 || height < 1 {
		return ""
	}
	peak := 0.0
	for _, b := range bars {
		peak = math.Max(peak, b.Value)
	}
	const colWidth = 6
	fill := lipgloss.NewStyle().Foreground(theme.Accent)

	var sb strings.Builder
	for row := height; row >= 1; row-- {
		for _, b := range bars {
			cell := strings.Repeat(" ", colWidth)
			if peak > 0 && barHeight(b.Value, peak, height) >= row {
				cell = " " + fill.Render("████") + " "
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	for _, b := range bars {
		sb.WriteString(center(fmt.Sprintf("%.1f", b.Value), colWidth))
	}
	sb.WriteString("\n")
	for _, b := range bars {
		sb.WriteString(theme.Muted.Render(center(b.Label, colWidth)))
	}
	return sb.String()
}

func barHeight(value, peak float64, height int) int {
	if value <= 0 {
		return 0
	}
	h := int(math.Round(value / peak * float64(height)))
	if h < 1 {
		h = 1
	}
	return h
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
