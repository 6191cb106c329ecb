package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles derived from the configured hint color.
type Theme struct {
	Accent    tcell.Style
	AccentDim tcell.Style
	AccentFg  tcell.Style
	Normal    tcell.Style
	Cursor    tcell.Style
	Status    tcell.Style
	Alert     tcell.Style
}

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// NewTheme derives a theme from accent. Text on the accent background is
// black or white, whichever is lighter-contrast.
func NewTheme(accent colorful.Color) Theme {
	text := white
	if l, _, _ := accent.Lab(); l > 0.6 {
		text = black
	}
	dim := accent.BlendLab(black, 0.55).Clamped()

	return Theme{
		Accent:    tcell.StyleDefault.Background(tc(accent)).Foreground(tc(text)),
		AccentDim: tcell.StyleDefault.Background(tc(dim)).Foreground(tc(white)),
		AccentFg:  tcell.StyleDefault.Foreground(tc(accent)).Bold(true),
		Normal:    tcell.StyleDefault,
		Cursor:    tcell.StyleDefault.Reverse(true),
		Status:    tcell.StyleDefault.Dim(true),
		Alert:     tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	}
}

func tc(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
