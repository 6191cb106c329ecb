package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mindchord/internal/input/gesture"
)

// CellAspect scales rows to columns. Terminal cells are about twice as
// tall as they are wide, so a vertical swipe covers half the cells of a
// horizontal one.
const CellAspect = 2.0

// Gestures is the recognizer surface the pointer drives.
type Gestures interface {
	Press(p gesture.Point)
	Move(p gesture.Point)
	Scroll(dy float64)
	Release(ev any) gesture.Sequence
}

// PointerResult reports what a mouse event meant outside of gestures.
type PointerResult struct {
	// Click is set when the primary button was released where it was
	// pressed without forming a gesture.
	Click bool
	X, Y  int
	// Scroll is the wheel direction for the view (-1 up, 1 down) when no
	// drag is in progress.
	Scroll int
}

// Pointer turns primary-button drags into recognizer calls.
type Pointer struct {
	g      Gestures
	down   bool
	startX int
	startY int
}

// NewPointer creates a pointer driving g.
func NewPointer(g Gestures) *Pointer {
	return &Pointer{g: g}
}

// Dragging reports whether the primary button is held.
func (p *Pointer) Dragging() bool {
	return p.down
}

// Handle processes one mouse event.
func (p *Pointer) Handle(ev *tcell.EventMouse) PointerResult {
	x, y := ev.Position()
	pt := gesture.Point{X: float64(x), Y: float64(y) * CellAspect}
	btn := ev.Buttons()

	switch {
	case btn&tcell.Button1 != 0:
		if !p.down {
			p.down = true
			p.startX, p.startY = x, y
			p.g.Press(pt)
		} else {
			p.g.Move(pt)
		}
		return PointerResult{}

	case btn&(tcell.WheelUp|tcell.WheelDown) != 0:
		dy := 1
		if btn&tcell.WheelUp != 0 {
			dy = -1
		}
		if p.down {
			p.g.Scroll(float64(dy))
			return PointerResult{}
		}
		return PointerResult{Scroll: dy}

	case p.down:
		p.down = false
		seq := p.g.Release(ev)
		if seq == "" && x == p.startX && y == p.startY {
			return PointerResult{Click: true, X: x, Y: y}
		}
	}
	return PointerResult{}
}
