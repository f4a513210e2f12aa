package formatter

import (
	"fmt"

	"github.com/fatih/color"
)

// Intensity palette from near-black through greens, matching the scale
// the tracker's charts always used.
var heatPalette = []*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgGreen),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgHiGreen),
	color.New(color.FgHiGreen, color.Bold),
}

// heatCell renders one hour cell: the integer minute count colored by
// its intensity relative to the hottest cell of the grid.
func heatCell(minutes, maxMinutes float64) string {
	text := fmt.Sprintf("%3.0f", minutes)
	if minutes <= 0 {
		return heatPalette[0].Sprint("  ·")
	}
	return heatColor(minutes, maxMinutes).Sprint(text)
}

func heatColor(minutes, maxMinutes float64) *color.Color {
	if maxMinutes <= 0 {
		return heatPalette[0]
	}
	idx := int(minutes / maxMinutes * float64(len(heatPalette)))
	if idx >= len(heatPalette) {
		idx = len(heatPalette) - 1
	}
	if idx < 1 {
		idx = 1
	}
	return heatPalette[idx]
}
