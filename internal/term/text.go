package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Truncate shortens s to at most width cells, ending in an ellipsis when
// anything was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	limit := width - uniseg.StringWidth(ellipsis)
	out := make([]byte, 0, len(s))
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > limit {
			break
		}
		out = append(out, g.Str()...)
		used += w
	}
	return string(out) + ellipsis
}

// drawText writes s at (x, y), clipped to width cells, and returns the
// number of cells used.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	text = Truncate(text, width)
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x+used, y, runes[0], runes[1:], style)
		used += g.Width()
	}
	return used
}

// fill paints width cells starting at (x, y).
func fill(s tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}
