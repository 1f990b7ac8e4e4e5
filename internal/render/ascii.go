package render

import (
	"fmt"
	"strings"
)

// ASCIILegend explains the shading used by ASCII.
const ASCIILegend = "Legend: █=bright ▓=medium ▒=dim ░=faint ·=very dim (space)=off"

// ASCII renders the canvas as shaded text with a numbered border.
func ASCII(c *Canvas) string {
	var b strings.Builder
	border := strings.Repeat("─", c.Width)

	b.WriteString("  ┌" + border + "┐\n")
	for y := 0; y < c.Height; y++ {
		fmt.Fprintf(&b, "%2d│", y)
		for x := 0; x < c.Width; x++ {
			px, _ := c.At(x, y)
			b.WriteString(shade(px.Brightness()))
		}
		b.WriteString("│\n")
	}
	b.WriteString("  └" + border + "┘\n")
	return b.String()
}

func shade(brightness int) string {
	switch {
	case brightness > 200:
		return "█"
	case brightness > 150:
		return "▓"
	case brightness > 100:
		return "▒"
	case brightness > 50:
		return "░"
	case brightness > 10:
		return "·"
	default:
		return " "
	}
}
