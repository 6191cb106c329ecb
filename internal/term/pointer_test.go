package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mindchord/internal/input/gesture"
)

type fakeGestures struct {
	calls  []string
	points []gesture.Point
	seq    gesture.Sequence
}

func (f *fakeGestures) Press(p gesture.Point) {
	f.calls = append(f.calls, "press")
	f.points = append(f.points, p)
}

func (f *fakeGestures) Move(p gesture.Point) {
	f.calls = append(f.calls, "move")
	f.points = append(f.points, p)
}

func (f *fakeGestures) Scroll(float64) {
	f.calls = append(f.calls, "scroll")
}

func (f *fakeGestures) Release(any) gesture.Sequence {
	f.calls = append(f.calls, "release")
	return f.seq
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func TestPointerDrag(t *testing.T) {
	g := &fakeGestures{seq: "rd"}
	p := NewPointer(g)

	p.Handle(mouse(1, 1, tcell.Button1))
	if !p.Dragging() {
		t.Error("Dragging() = false after press")
	}
	p.Handle(mouse(5, 1, tcell.Button1))
	p.Handle(mouse(5, 1, tcell.WheelDown))
	res := p.Handle(mouse(5, 3, tcell.ButtonNone))

	want := []string{"press", "move", "scroll", "release"}
	if len(g.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", g.calls, want)
	}
	for i := range want {
		if g.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, g.calls[i], want[i])
		}
	}
	if res.Click {
		t.Error("a gesture release should not be a click")
	}
	if p.Dragging() {
		t.Error("Dragging() = true after release")
	}
	if got := g.points[0]; got.Y != 1*CellAspect {
		t.Errorf("press Y = %v, want %v", got.Y, CellAspect)
	}
}

func TestPointerClick(t *testing.T) {
	g := &fakeGestures{}
	p := NewPointer(g)

	p.Handle(mouse(3, 4, tcell.Button1))
	res := p.Handle(mouse(3, 4, tcell.ButtonNone))
	if !res.Click || res.X != 3 || res.Y != 4 {
		t.Errorf("Handle = %+v, want click at 3,4", res)
	}
}

func TestPointerWheelWithoutDrag(t *testing.T) {
	g := &fakeGestures{}
	p := NewPointer(g)

	if res := p.Handle(mouse(0, 0, tcell.WheelUp)); res.Scroll != -1 {
		t.Errorf("wheel up Scroll = %d, want -1", res.Scroll)
	}
	if res := p.Handle(mouse(0, 0, tcell.WheelDown)); res.Scroll != 1 {
		t.Errorf("wheel down Scroll = %d, want 1", res.Scroll)
	}
	if len(g.calls) != 0 {
		t.Errorf("recognizer called without a drag: %v", g.calls)
	}
}
