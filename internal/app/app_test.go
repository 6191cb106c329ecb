package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mindchord/internal/commands"
	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/hint"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/storage"
	"github.com/dshills/mindchord/internal/thought"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(_ time.Duration, f func()) hint.Timer {
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) fireAll() {
	pending := s.timers
	s.timers = nil
	for _, t := range pending {
		if !t.stopped {
			t.f()
		}
	}
}

type testApp struct {
	*Application
	kv    *storage.Memory
	sched *fakeScheduler
}

func newTestApp(t *testing.T, kv *storage.Memory, mutate ...func(*config.Config)) testApp {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemory()
	}
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	sched := &fakeScheduler{}
	app, err := New(Options{Config: &cfg, Storage: kv, Scheduler: sched})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Close)
	return testApp{Application: app, kv: kv, sched: sched}
}

func topLevel(a *Application) int {
	return len(a.Store().State().Tree.Children(thought.Root))
}

// drag draws seq with the recognizer, starting far enough from the press
// point to establish an anchor.
func drag(a *Application, seq string) {
	r := a.Recognizer()
	p := gesture.Point{}
	r.Press(p)
	p.X += 3
	r.Move(p)
	for _, c := range seq {
		switch gesture.Direction(c) {
		case gesture.Left:
			p.X -= 3
		case gesture.Right:
			p.X += 3
		case gesture.Up:
			p.Y -= 3
		case gesture.Down:
			p.Y += 3
		}
		r.Move(p)
	}
}

func TestNewStartsOnWelcomeDocument(t *testing.T) {
	a := newTestApp(t, nil)

	if got := topLevel(a.Application); got != 2 {
		t.Errorf("top-level thoughts = %d, want 2", got)
	}
	if got := a.Store().State().CursorValue(); got != "Welcome to mindchord" {
		t.Errorf("cursor value = %q", got)
	}
	if a.Registry().ByID(commands.IDNewThought) == nil {
		t.Error("built-in commands missing from registry")
	}
}

func TestKeyboardCommand(t *testing.T) {
	a := newTestApp(t, nil)

	if err := a.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone)); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if got := topLevel(a.Application); got != 3 {
		t.Errorf("top-level thoughts = %d, want 3", got)
	}
	if ids := a.Recent(); len(ids) == 0 || ids[0] != commands.IDNewThought {
		t.Errorf("Recent() = %v, want newThought first", ids)
	}
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t, nil)
	err := a.HandleKey(key.NewRuneEvent('q', key.ModCtrl))
	if !errors.Is(err, ErrQuit) {
		t.Errorf("HandleKey(Ctrl+Q) = %v, want ErrQuit", err)
	}
}

func TestGestureExecutesAndLingers(t *testing.T) {
	a := newTestApp(t, nil)

	drag(a.Application, "rd")
	if got := a.Hint(); got.Level != hint.Basic || got.Label != "New Thought" {
		t.Errorf("hint during drag = %+v, want basic New Thought", got)
	}
	a.Recognizer().Release(nil)

	if got := topLevel(a.Application); got != 3 {
		t.Errorf("top-level thoughts = %d, want 3", got)
	}

	// Training mode keeps the executed command on screen after release.
	a.sched.fireAll()
	if got := a.Hint(); got.Level != hint.Basic || got.Label != "New Thought" {
		t.Errorf("hint after release = %+v, want lingering New Thought", got)
	}
}

func TestGestureWithoutTrainingClearsHint(t *testing.T) {
	a := newTestApp(t, nil, func(c *config.Config) { c.Hint.TrainingMode = false })

	drag(a.Application, "rd")
	a.Recognizer().Release(nil)
	a.sched.fireAll()

	if got := a.Hint(); got.Level != hint.Hidden {
		t.Errorf("hint level = %v, want hidden", got.Level)
	}
}

func TestPauseShowsExtendedHint(t *testing.T) {
	a := newTestApp(t, nil)

	drag(a.Application, "r")
	a.sched.fireAll()

	got := a.Hint()
	if got.Level != hint.Extended {
		t.Fatalf("hint level = %v, want extended", got.Level)
	}
	found := false
	for _, c := range got.Candidates {
		if c.ID == commands.IDNewThought {
			found = true
		}
	}
	if !found {
		t.Errorf("extended candidates missing newThought")
	}
}

func TestPaletteKeys(t *testing.T) {
	a := newTestApp(t, nil)

	if err := a.HandleKey(key.NewRuneEvent('p', key.ModMeta)); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if !a.Palette().IsOpen() {
		t.Fatal("palette should be open")
	}
	for _, r := range "indent" {
		_ = a.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
	if got := a.Palette().Query(); got != "indent" {
		t.Errorf("Query() = %q, want indent", got)
	}
	results := a.Palette().Results()
	if len(results) == 0 || results[0].Command.ID != commands.IDIndent {
		t.Fatalf("first result should be indent, got %d results", len(results))
	}

	_ = a.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	if a.Palette().IsOpen() {
		t.Error("palette should close after running a command")
	}
	if ids := a.Recent(); len(ids) == 0 || ids[0] != commands.IDIndent {
		t.Errorf("Recent() = %v, want indent first", ids)
	}
}

func TestPaletteCancelsDrag(t *testing.T) {
	a := newTestApp(t, nil)
	a.openPalette()

	drag(a.Application, "rd")
	if seq := a.Recognizer().Release(nil); seq != "" {
		t.Errorf("Release() = %q, want empty while palette is open", seq)
	}
	if got := topLevel(a.Application); got != 2 {
		t.Errorf("top-level thoughts = %d, want 2", got)
	}
}

func TestCheatsheetView(t *testing.T) {
	a := newTestApp(t, nil)

	_ = a.HandleKey(key.NewSpecialEvent(key.KeyF1, key.ModNone))
	v := a.view()
	if len(v.Cheatsheet) == 0 {
		t.Fatal("cheatsheet should list gesture commands")
	}
	for _, c := range v.Cheatsheet {
		if c.HideFromHelp {
			t.Errorf("cheatsheet lists hidden command %s", c.ID)
		}
	}

	_ = a.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone))
	if a.Store().State().CheatsheetOpen {
		t.Error("Escape should close the cheatsheet")
	}
}

func TestClickMovesCursor(t *testing.T) {
	a := newTestApp(t, nil)
	visible := a.Store().State().Tree.Visible()
	target := visible[len(visible)-1]

	a.Click(target, true)
	if got := a.Store().State().Cursor; !got.Equal(target) {
		t.Errorf("cursor = %s, want %s", got, target)
	}
}

func TestDocumentPersists(t *testing.T) {
	kv := storage.NewMemory()
	a := newTestApp(t, kv)
	_ = a.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))

	data, err := kv.Get(DocumentKey)
	if err != nil {
		t.Fatalf("document not saved: %v", err)
	}
	if !strings.HasPrefix(string(data), "- Welcome to mindchord\n") {
		t.Errorf("saved outline = %q", data)
	}

	b := newTestApp(t, kv)
	if got := topLevel(b.Application); got != 3 {
		t.Errorf("reopened top-level thoughts = %d, want 3", got)
	}
}

func TestTrainingPersists(t *testing.T) {
	kv := storage.NewMemory()
	a := newTestApp(t, kv)
	if !a.Training() {
		t.Fatal("training should default to on")
	}
	_ = a.HandleKey(key.NewRuneEvent('t', key.ModMeta|key.ModAlt))
	if a.Training() {
		t.Fatal("toggle should turn training off")
	}

	b := newTestApp(t, kv)
	if b.Training() {
		t.Error("training setting was not persisted")
	}
}

func TestLuaCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "shout.lua")
	src := `command {
  id = "shout",
  label = "Shout",
  keyboard = "Meta+k",
  exec = function(ctx) ctx.alert("hello " .. ctx.value) end,
}
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, nil, func(c *config.Config) { c.Plugins.Paths = []string{script} })
	if a.Registry().ByID("shout") == nil {
		t.Fatal("script command not registered")
	}
	_ = a.HandleKey(key.NewRuneEvent('k', key.ModMeta))
	if got := a.Store().State().Alert; got != "hello Welcome to mindchord" {
		t.Errorf("Alert = %q", got)
	}

	// The next key clears the alert.
	_ = a.HandleKey(key.NewSpecialEvent(key.KeyF2, key.ModNone))
	if got := a.Store().State().Alert; got != "" {
		t.Errorf("Alert = %q after next key, want empty", got)
	}
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t, nil)
	cfg := config.Default()
	cfg.Gesture.MinDistance = 10
	a.ApplyConfig(cfg)

	if got := a.Config().Gesture.MinDistance; got != 10 {
		t.Errorf("MinDistance = %v, want 10", got)
	}

	// A 3-cell drag no longer starts a gesture.
	drag(a.Application, "rd")
	if seq := a.Recognizer().Release(nil); seq != "" {
		t.Errorf("Release() = %q, want empty under the larger threshold", seq)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, nil)
	sim := tcell.NewSimulationScreen("UTF-8")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, sim) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if a.IsRunning() {
		t.Error("IsRunning() = true after Run returned")
	}
}

func TestInitErrorUnwraps(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dir = ""
	_, err := New(Options{Config: &cfg})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "storage" {
		t.Fatalf("New() = %v, want storage InitError", err)
	}
	if !errors.Is(err, errNoStorage) {
		t.Errorf("errors.Is(err, errNoStorage) = false")
	}
}
