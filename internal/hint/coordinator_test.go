package hint

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/input/gesture"
)

type fakeTimer struct {
	d       time.Duration
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

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that has not been stopped, including timers
// that were superseded, so stale callbacks are exercised too.
func (s *fakeScheduler) fireAll() {
	pending := s.timers
	s.timers = nil
	for _, t := range pending {
		t.f()
	}
}

func (s *fakeScheduler) last() *fakeTimer {
	return s.timers[len(s.timers)-1]
}

type display struct {
	calls []string
	basic string
	ext   []*command.Command
}

func (d *display) ShowBasic(label string, seq gesture.Sequence) {
	d.basic = label
	d.calls = append(d.calls, "basic:"+label+":"+string(seq))
}

func (d *display) ShowExtended(seq gesture.Sequence, c []*command.Command) {
	d.ext = c
	d.calls = append(d.calls, "extended:"+string(seq))
}

func (d *display) Clear() {
	d.calls = append(d.calls, "clear")
}

type executor struct {
	ran []string
}

func (e *executor) ExecuteGesture(cmd *command.Command, _ any) {
	e.ran = append(e.ran, cmd.ID)
}

type recorder struct {
	ids []string
	err error
}

func (r *recorder) Add(id string) error {
	r.ids = append(r.ids, id)
	return r.err
}

type fixture struct {
	sched *fakeScheduler
	disp  *display
	exec  *executor
	rec   *recorder
	train bool
	c     *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	newThought := &command.Command{ID: "newThought", Label: "New Thought", Gestures: []gesture.Sequence{"rd"}}
	newSub := &command.Command{ID: "newSubthought", Label: "New Subthought", Gestures: []gesture.Sequence{"rdr"}}
	up := &command.Command{ID: "cursorUp", Label: "Cursor Up", Gestures: []gesture.Sequence{"lu"}, Navigation: true}
	res := command.NewResolver(command.NewRegistry([]*command.Command{newThought, newSub, up}))

	f := &fixture{sched: &fakeScheduler{}, disp: &display{}, exec: &executor{}, rec: &recorder{}}
	f.c = New(Config{PromotionDelay: time.Second, DowngradeDelay: time.Millisecond}, res, f.exec, f.disp,
		WithScheduler(f.sched),
		WithRecorder(f.rec),
		WithTraining(func() bool { return f.train }),
	)
	return f
}

func TestSwipeShowsBasicHint(t *testing.T) {
	f := newFixture(t)

	f.c.OnSwipe(gesture.Right, "r")
	if f.c.Level() != Basic || f.disp.basic != "" {
		t.Errorf("after r: level=%v label=%q, want basic with no label", f.c.Level(), f.disp.basic)
	}

	f.c.OnSwipe(gesture.Down, "rd")
	if f.disp.basic != "New Thought" {
		t.Errorf("after rd label = %q, want New Thought", f.disp.basic)
	}

	f.c.OnSwipe(gesture.Up, "rdu")
	if f.disp.basic != DefaultConfig().CancelLabel {
		t.Errorf("after rdu label = %q, want cancel indicator", f.disp.basic)
	}
}

func TestPromotionAfterPause(t *testing.T) {
	f := newFixture(t)
	f.c.OnSwipe(gesture.Right, "r")
	first := f.sched.last()
	f.c.OnSwipe(gesture.Down, "rd")

	if !first.stopped {
		t.Error("promotion timer not restarted on swipe")
	}
	if f.sched.last().d != time.Second {
		t.Errorf("promotion delay = %v, want 1s", f.sched.last().d)
	}

	f.sched.fireAll()
	if f.c.Level() != Extended {
		t.Fatalf("Level() = %v, want extended", f.c.Level())
	}
	if len(f.disp.ext) != 2 || f.disp.ext[0].ID != "newThought" || f.disp.ext[1].ID != "newSubthought" {
		t.Errorf("extended candidates = %v", f.disp.ext)
	}
	extendedCount := 0
	for _, c := range f.disp.calls {
		if c == "extended:rd" {
			extendedCount++
		}
	}
	if extendedCount != 1 {
		t.Errorf("stale promotion fired: calls = %v", f.disp.calls)
	}

	// Already extended: next promotion is immediate and the basic hint is
	// not shown again.
	before := len(f.disp.calls)
	f.c.OnSwipe(gesture.Right, "rdr")
	if f.sched.last().d != 0 {
		t.Errorf("promotion delay while extended = %v, want 0", f.sched.last().d)
	}
	if len(f.disp.calls) != before {
		t.Errorf("basic hint shown while extended: %v", f.disp.calls[before:])
	}
	f.sched.fireAll()
	if len(f.disp.ext) != 1 || f.disp.ext[0].ID != "newSubthought" {
		t.Errorf("extended candidates after rdr = %v", f.disp.ext)
	}
}

func TestReleaseExecutesAndClears(t *testing.T) {
	f := newFixture(t)
	f.c.OnSwipe(gesture.Down, "rd")

	cmd := f.c.OnRelease("rd", nil)
	if cmd == nil || cmd.ID != "newThought" {
		t.Fatalf("OnRelease = %v, want newThought", cmd)
	}
	if len(f.exec.ran) != 1 || len(f.rec.ids) != 1 || f.rec.ids[0] != "newThought" {
		t.Errorf("ran=%v recent=%v", f.exec.ran, f.rec.ids)
	}
	if f.c.Level() != Basic {
		t.Errorf("hint cleared before the deferred tick")
	}

	f.sched.fireAll()
	if f.c.Level() != Hidden {
		t.Errorf("Level() = %v after tick, want hidden", f.c.Level())
	}
	if f.disp.calls[len(f.disp.calls)-1] != "clear" {
		t.Errorf("last display call = %q, want clear", f.disp.calls[len(f.disp.calls)-1])
	}
	for _, c := range f.disp.calls {
		if c == "extended:rd" {
			t.Error("promotion fired after release")
		}
	}
}

func TestReleaseWithoutMatch(t *testing.T) {
	f := newFixture(t)
	f.c.OnSwipe(gesture.Left, "l")
	if cmd := f.c.OnRelease("l", nil); cmd != nil {
		t.Errorf("OnRelease(l) = %v, want nil", cmd.ID)
	}
	if len(f.exec.ran) != 0 || len(f.rec.ids) != 0 {
		t.Errorf("unexpected execution: %v %v", f.exec.ran, f.rec.ids)
	}
	f.sched.fireAll()
	if f.c.Level() != Hidden {
		t.Errorf("Level() = %v, want hidden", f.c.Level())
	}
}

func TestTrainingModeLingers(t *testing.T) {
	f := newFixture(t)
	f.train = true

	f.c.OnSwipe(gesture.Down, "rd")
	f.sched.fireAll() // promote
	f.c.OnRelease("rd", nil)
	f.sched.fireAll() // downgrade

	if f.c.Level() != Basic {
		t.Fatalf("Level() = %v, want basic (training)", f.c.Level())
	}
	if f.c.Label() != "New Thought" {
		t.Errorf("Label() = %q, want New Thought", f.c.Label())
	}

	// Navigation commands never linger.
	f.c.OnSwipe(gesture.Up, "lu")
	f.c.OnRelease("lu", nil)
	f.sched.fireAll()
	if f.c.Level() != Hidden {
		t.Errorf("Level() = %v after navigation command, want hidden", f.c.Level())
	}
}

func TestCancelClearsEverything(t *testing.T) {
	f := newFixture(t)
	f.c.OnSwipe(gesture.Right, "r")
	f.c.Cancel()

	if f.c.Level() != Hidden {
		t.Errorf("Level() = %v, want hidden", f.c.Level())
	}
	f.sched.fireAll()
	if f.c.Level() != Hidden {
		t.Error("cancelled promotion timer still fired")
	}

	calls := len(f.disp.calls)
	f.c.Cancel()
	if len(f.disp.calls) != calls {
		t.Error("Cancel while hidden should not touch the display")
	}
}

func TestNewGestureDropsPendingCleanup(t *testing.T) {
	f := newFixture(t)
	f.c.OnSwipe(gesture.Down, "rd")
	f.c.OnRelease("rd", nil)

	f.c.OnStart()
	f.c.OnSwipe(gesture.Right, "r")
	f.sched.fireAll()

	if f.c.Level() != Extended {
		t.Errorf("Level() = %v, want the new gesture's hint to survive", f.c.Level())
	}
}

func TestRecorderErrorDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.rec.err = errors.New("disk full")
	if cmd := f.c.OnRelease("rd", nil); cmd == nil {
		t.Error("recorder failure should not prevent execution")
	}
}

func TestPostRunsTimerCallbacks(t *testing.T) {
	f := newFixture(t)
	var posted int
	WithPost(func(fn func()) {
		posted++
		fn()
	})(f.c)

	f.c.OnSwipe(gesture.Right, "r")
	f.sched.fireAll()
	if posted != 1 {
		t.Errorf("posted = %d, want 1", posted)
	}
}
