package term

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/palette"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// View is everything one frame shows.
type View struct {
	State *store.State
	Hint  HintState
	// Palette is nil when the palette is closed.
	Palette *PaletteView
	// Cheatsheet lists the commands shown while the cheatsheet is open.
	Cheatsheet []*command.Command
}

// PaletteView is the palette overlay.
type PaletteView struct {
	Query    string
	Results  []palette.Result
	Selected int
}

// Screen draws views on a tcell screen and remembers where each thought
// was drawn.
type Screen struct {
	screen tcell.Screen

	mu    sync.Mutex
	theme Theme
	rows  []thought.Path
	top   int
}

// NewScreen wraps s. Init must be called before use.
func NewScreen(s tcell.Screen, theme Theme) *Screen {
	return &Screen{screen: s, theme: theme}
}

// Init initializes the terminal and enables mouse reporting.
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.HideCursor()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// PollEvent blocks for the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Post queues fn to run on the event loop.
func (s *Screen) Post(fn func()) {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(fn)) // queue full means we are shutting down
}

// SetTheme replaces the theme for subsequent draws.
func (s *Screen) SetTheme(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
}

// ScrollBy moves the outline viewport.
func (s *Screen) ScrollBy(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.top += delta
	if s.top < 0 {
		s.top = 0
	}
}

// PathAt returns the thought drawn on row y by the last Draw.
func (s *Screen) PathAt(y int) (thought.Path, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := y + s.top
	if y < 0 || i >= len(s.rows) || y >= s.outlineHeight() {
		return nil, false
	}
	return s.rows[i], true
}

func (s *Screen) outlineHeight() int {
	_, h := s.screen.Size()
	return h - 2
}

// Draw renders v.
func (s *Screen) Draw(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.screen
	sc.Clear()
	w, h := sc.Size()
	if w <= 0 || h <= 2 {
		sc.Show()
		return
	}

	s.drawOutline(v.State, w, h-2)
	s.drawStatus(v, w, h-1)
	switch v.Hint.Level {
	case hint.Basic:
		s.drawBasicHint(v.Hint, w, h-2)
	case hint.Extended:
		s.drawExtendedHint(v.Hint, w, h-2)
	}
	if v.Cheatsheet != nil {
		s.drawCheatsheet(v.Cheatsheet, w, h)
	}
	if v.Palette != nil {
		s.drawPalette(v.Palette, w, h)
	}
	sc.Show()
}

func (s *Screen) drawOutline(st *store.State, w, height int) {
	s.rows = st.Tree.Visible()

	cur := -1
	for i, p := range s.rows {
		if p.Equal(st.Cursor) {
			cur = i
			break
		}
	}
	if cur >= 0 {
		if cur < s.top {
			s.top = cur
		} else if cur >= s.top+height {
			s.top = cur - height + 1
		}
	}
	if last := len(s.rows) - height; s.top > last {
		s.top = last
	}
	if s.top < 0 {
		s.top = 0
	}

	for y := 0; y < height && s.top+y < len(s.rows); y++ {
		p := s.rows[s.top+y]
		th, _ := st.Tree.Get(p.Leaf())

		style := s.theme.Normal
		bullet := "•"
		if len(st.Tree.Children(p.Leaf())) > 0 {
			bullet = "▸"
		}
		if st.IsMulticursor(p) {
			style = s.theme.AccentFg
			bullet = "◆"
		}
		if p.Equal(st.Cursor) {
			if style == s.theme.Normal {
				style = s.theme.Cursor
			} else {
				style = style.Reverse(true)
			}
		}

		indent := 2 * (p.Depth() - 1)
		line := bullet + " " + th.Value
		fill(s.screen, indent, y, w-indent, tcell.StyleDefault)
		drawText(s.screen, indent, y, w-indent, line, style)
	}
}

func (s *Screen) drawStatus(v View, w, y int) {
	st := v.State
	var text string
	style := s.theme.Status
	switch {
	case st.Alert != "":
		text, style = st.Alert, s.theme.Alert
	case st.MulticursorExecuting:
		text = "running " + st.MulticursorLabel
	case st.HasMulticursors():
		text = fmt.Sprintf("%d selected · Esc to clear", len(st.Multicursors))
	default:
		text = "drag to gesture · F1 cheatsheet · Meta+p palette · Ctrl+q quit"
	}
	drawText(s.screen, 0, y, w, text, style)
}

func (s *Screen) drawBasicHint(hs HintState, w, y int) {
	text := " " + hs.Sequence.Arrows()
	if hs.Label != "" {
		text += "  " + hs.Label
	}
	text += " "
	drawText(s.screen, 0, y, w, text, s.theme.Accent)
}

// drawExtendedHint lists candidates upward from row bottom. The part of
// each gesture already drawn is highlighted.
func (s *Screen) drawExtendedHint(hs HintState, w, bottom int) {
	cands := hs.Candidates
	if len(cands) > bottom {
		cands = cands[:bottom]
	}
	width := 0
	lines := make([]string, len(cands))
	for i, c := range cands {
		lines[i] = c.Gesture().Arrows() + "  " + c.Label
		if n := uniseg.StringWidth(lines[i]) + 2; n > width {
			width = n
		}
	}
	if width > w {
		width = w
	}

	y := bottom - len(cands)
	for i, c := range cands {
		row := y + i
		fill(s.screen, 0, row, width, s.theme.AccentDim)
		done := hs.Sequence.Arrows()
		x := 1 + drawText(s.screen, 1, row, width-1, done, s.theme.Accent)
		rest := strings.TrimPrefix(c.Gesture().Arrows(), done)
		x += drawText(s.screen, x, row, width-x, rest, s.theme.AccentDim)
		drawText(s.screen, x+2, row, width-x-2, c.Label, s.theme.AccentDim)
	}
	if len(cands) == 0 {
		drawText(s.screen, 0, bottom, w, " "+hs.Sequence.Arrows()+" ", s.theme.Accent)
	}
}

func (s *Screen) drawPalette(p *PaletteView, w, h int) {
	width := w - 4
	if width > 60 {
		width = 60
	}
	x := (w - width) / 2
	y := h / 6

	fill(s.screen, x, y, width, s.theme.Accent)
	drawText(s.screen, x+1, y, width-2, "> "+p.Query, s.theme.Accent)

	for i, r := range p.Results {
		row := y + 1 + i
		if row >= h-1 {
			break
		}
		style := s.theme.AccentDim
		if i == p.Selected {
			style = style.Reverse(true)
		}
		fill(s.screen, x, row, width, style)
		label := r.Command.Label
		if len(r.Command.Keyboard) > 0 {
			label += "  " + r.Command.Keyboard[0].String()
		}
		drawText(s.screen, x+1, row, width-2, label, style)
		for _, m := range r.Matches {
			if m >= len(r.Command.Label) {
				continue
			}
			col := x + 1 + uniseg.StringWidth(r.Command.Label[:m])
			if col < x+width-1 {
				mainc, combc, _, _ := s.screen.GetContent(col, row)
				s.screen.SetContent(col, row, mainc, combc, style.Bold(true).Underline(true))
			}
		}
	}
}

func (s *Screen) drawCheatsheet(cmds []*command.Command, w, h int) {
	for y := 0; y < h-1; y++ {
		fill(s.screen, 0, y, w, s.theme.AccentDim)
	}
	drawText(s.screen, 1, 0, w-2, "Gestures", s.theme.Accent)
	for i, c := range cmds {
		row := 1 + i
		if row >= h-1 {
			break
		}
		x := 1 + drawText(s.screen, 1, row, 12, c.Gesture().Arrows(), s.theme.AccentDim.Bold(true))
		if x < 14 {
			x = 14
		}
		drawText(s.screen, x, row, w-x-1, c.Label, s.theme.AccentDim)
	}
}

// Sync repaints the whole terminal, e.g. after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
