package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/palette"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := NewScreen(sim, NewTheme(colorful.Color{R: 0.48, G: 0.64, B: 0.97}))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s, sim
}

func rowText(sim tcell.Screen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, combc, _, width := sim.GetContent(x, y)
		if width == 0 {
			continue
		}
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
		b.WriteString(string(combc))
	}
	return strings.TrimRight(b.String(), " ")
}

func seqIDs() thought.Option {
	n := 0
	return thought.WithIDFunc(func() thought.ID {
		n++
		return thought.ID(string(rune('a' + n - 1)))
	})
}

func sampleState(t *testing.T) *store.State {
	t.Helper()
	tree, err := thought.ParseOutline(strings.NewReader("- one\n  - two\n- three\n"), seqIDs())
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	st := store.NewState(tree)
	st.Cursor = thought.Path{"c"}
	return st
}

func TestDrawOutline(t *testing.T) {
	s, sim := newSimScreen(t, 40, 6)
	s.Draw(View{State: sampleState(t)})

	want := []string{"▸ one", "  • two", "• three"}
	for y, w := range want {
		if got := rowText(sim, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if got := rowText(sim, 5); !strings.Contains(got, "F1 cheatsheet") {
		t.Errorf("status row = %q", got)
	}
}

func TestPathAt(t *testing.T) {
	s, _ := newSimScreen(t, 40, 6)
	s.Draw(View{State: sampleState(t)})

	tests := []struct {
		y    int
		want string
		ok   bool
	}{
		{0, "/a", true},
		{1, "/a/b", true},
		{2, "/c", true},
		{3, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		p, ok := s.PathAt(tt.y)
		if ok != tt.ok {
			t.Errorf("PathAt(%d) ok = %v, want %v", tt.y, ok, tt.ok)
			continue
		}
		if ok && p.String() != tt.want {
			t.Errorf("PathAt(%d) = %s, want %s", tt.y, p, tt.want)
		}
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	var outline strings.Builder
	for i := 0; i < 10; i++ {
		outline.WriteString("- item\n")
	}
	tree, err := thought.ParseOutline(strings.NewReader(outline.String()), seqIDs())
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	st := store.NewState(tree)
	st.Cursor = thought.Path{"j"}

	s, _ := newSimScreen(t, 20, 5)
	s.Draw(View{State: st})

	p, ok := s.PathAt(2)
	if !ok || p.String() != "/j" {
		t.Errorf("PathAt(2) = %v, %v; want /j", p, ok)
	}
}

func TestDrawStatusAlert(t *testing.T) {
	s, sim := newSimScreen(t, 40, 6)
	st := sampleState(t)
	st.Alert = "Copied 2 thoughts"
	s.Draw(View{State: st})

	if got := rowText(sim, 5); got != "Copied 2 thoughts" {
		t.Errorf("status row = %q", got)
	}
}

func TestDrawHints(t *testing.T) {
	s, sim := newSimScreen(t, 40, 8)
	st := sampleState(t)

	s.Draw(View{State: st, Hint: HintState{Level: hint.Basic, Label: "New Thought", Sequence: "rd"}})
	if got := rowText(sim, 6); !strings.Contains(got, "→↓") || !strings.Contains(got, "New Thought") {
		t.Errorf("basic hint row = %q", got)
	}

	cands := []*command.Command{
		{ID: "newThought", Label: "New Thought", Gestures: []gesture.Sequence{"rd"}},
		{ID: "newSubthought", Label: "New Subthought", Gestures: []gesture.Sequence{"rdr"}},
	}
	s.Draw(View{State: st, Hint: HintState{Level: hint.Extended, Sequence: "rd", Candidates: cands}})
	if got := rowText(sim, 4); !strings.Contains(got, "New Thought") {
		t.Errorf("first candidate row = %q", got)
	}
	if got := rowText(sim, 5); !strings.Contains(got, "→↓→") || !strings.Contains(got, "New Subthought") {
		t.Errorf("second candidate row = %q", got)
	}
}

func TestDrawPalette(t *testing.T) {
	s, sim := newSimScreen(t, 40, 12)
	pv := &PaletteView{
		Query: "ind",
		Results: []palette.Result{
			{Command: &command.Command{ID: "indent", Label: "Indent"}, Matches: []int{0, 1, 2}},
		},
	}
	s.Draw(View{State: sampleState(t), Palette: pv})

	if got := rowText(sim, 2); !strings.Contains(got, "> ind") {
		t.Errorf("palette query row = %q", got)
	}
	if got := rowText(sim, 3); !strings.Contains(got, "Indent") {
		t.Errorf("palette result row = %q", got)
	}
}

func TestDrawCheatsheet(t *testing.T) {
	s, sim := newSimScreen(t, 40, 8)
	cmds := []*command.Command{
		{ID: "newThought", Label: "New Thought", Gestures: []gesture.Sequence{"rd"}},
	}
	s.Draw(View{State: store.NewState(nil), Cheatsheet: cmds})

	if got := rowText(sim, 0); !strings.Contains(got, "Gestures") {
		t.Errorf("cheatsheet title = %q", got)
	}
	if got := rowText(sim, 1); !strings.Contains(got, "→↓") || !strings.Contains(got, "New Thought") {
		t.Errorf("cheatsheet row = %q", got)
	}
}

func TestPostRunsOnEventLoop(t *testing.T) {
	s, _ := newSimScreen(t, 10, 4)
	ran := false
	s.Post(func() { ran = true })

	for i := 0; i < 10; i++ {
		if ev, ok := s.PollEvent().(*tcell.EventInterrupt); ok {
			ev.Data().(func())()
			break
		}
	}
	if !ran {
		t.Error("posted function did not run")
	}
}
