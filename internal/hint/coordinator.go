// Package hint decides when to show gesture hints.
//
// Each committed swipe shows a basic hint immediately: the label of the
// command the sequence resolves to, or a cancel indicator once no command
// can match. If the user pauses, the hint is promoted to an extended menu
// of every command the sequence can still complete to. On release the
// resolved command is executed and, after a short deferral, the hint is
// cleared unless training mode keeps it on screen.
package hint

import (
	"sync"
	"time"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/logging"
)

// Level is the visible hint level.
type Level uint8

const (
	// Hidden shows nothing.
	Hidden Level = iota
	// Basic shows a single label.
	Basic
	// Extended shows every possible completion.
	Extended
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Hidden:
		return "hidden"
	case Basic:
		return "basic"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}

// Display renders hints.
type Display interface {
	ShowBasic(label string, seq gesture.Sequence)
	ShowExtended(seq gesture.Sequence, candidates []*command.Command)
	Clear()
}

// Resolver is the subset of command.Resolver the coordinator needs.
type Resolver interface {
	ResolveGesture(seq gesture.Sequence) *command.Command
	Candidates(seq gesture.Sequence) []*command.Command
	Possible(seq gesture.Sequence) bool
}

// Executor runs resolved gesture commands.
type Executor interface {
	ExecuteGesture(cmd *command.Command, ev any)
}

// Recorder remembers recently used commands.
type Recorder interface {
	Add(id string) error
}

// Config holds hint timing.
type Config struct {
	// PromotionDelay is the pause before a basic hint becomes extended.
	PromotionDelay time.Duration
	// DowngradeDelay defers cleanup after release so it runs after the
	// executed command's own effects.
	DowngradeDelay time.Duration
	// CancelLabel is shown when no command can match.
	CancelLabel string
}

// DefaultConfig returns the default timings.
func DefaultConfig() Config {
	return Config{
		PromotionDelay: 800 * time.Millisecond,
		DowngradeDelay: 10 * time.Millisecond,
		CancelLabel:    "✗ Cancel gesture",
	}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.sched = s }
}

// WithPost sets how timer callbacks are moved onto the UI goroutine.
// By default they run on the timer goroutine.
func WithPost(post func(func())) Option {
	return func(c *Coordinator) { c.post = post }
}

// WithRecorder records executed commands.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recent = r }
}

// WithTraining reports whether training mode is on.
func WithTraining(fn func() bool) Option {
	return func(c *Coordinator) { c.training = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logging.OrNop(l).WithComponent("hint")
	}
}

// Coordinator is the hint state machine. Every coordinator owns its own
// timers.
type Coordinator struct {
	mu sync.Mutex

	cfg      Config
	resolver Resolver
	executor Executor
	display  Display
	recent   Recorder
	training func() bool
	sched    Scheduler
	post     func(func())
	logger   *logging.Logger

	level Level
	seq   gesture.Sequence
	label string

	promote   timerSlot
	downgrade timerSlot
}

// New creates a coordinator.
func New(cfg Config, r Resolver, e Executor, d Display, opts ...Option) *Coordinator {
	def := DefaultConfig()
	if cfg.CancelLabel == "" {
		cfg.CancelLabel = def.CancelLabel
	}
	if cfg.PromotionDelay <= 0 {
		cfg.PromotionDelay = def.PromotionDelay
	}
	if cfg.DowngradeDelay < 0 {
		cfg.DowngradeDelay = 0
	}
	c := &Coordinator{
		cfg:      cfg,
		resolver: r,
		executor: e,
		display:  d,
		training: func() bool { return false },
		sched:    RealScheduler(),
		post:     func(f func()) { f() },
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetConfig replaces the timings for future timers.
func (c *Coordinator) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg.PromotionDelay > 0 {
		c.cfg.PromotionDelay = cfg.PromotionDelay
	}
	if cfg.DowngradeDelay >= 0 {
		c.cfg.DowngradeDelay = cfg.DowngradeDelay
	}
	if cfg.CancelLabel != "" {
		c.cfg.CancelLabel = cfg.CancelLabel
	}
}

// Level returns the visible level.
func (c *Coordinator) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Label returns the label of the basic hint.
func (c *Coordinator) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// OnStart is called when a new gesture starts. A pending post-release
// cleanup is dropped so it cannot clear the new gesture's hint.
func (c *Coordinator) OnStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.downgrade.clear()
}

// OnSwipe updates the hint for a newly committed swipe and restarts the
// promotion timer.
func (c *Coordinator) OnSwipe(_ gesture.Direction, seq gesture.Sequence) {
	c.mu.Lock()
	c.seq = seq
	c.downgrade.clear()

	var show func()
	delay := c.cfg.PromotionDelay
	if c.level == Extended {
		delay = 0
	} else {
		label := ""
		if cmd := c.resolver.ResolveGesture(seq); cmd != nil {
			label = cmd.Label
		} else if !c.resolver.Possible(seq) {
			label = c.cfg.CancelLabel
		}
		c.level = Basic
		c.label = label
		show = func() { c.display.ShowBasic(label, seq) }
	}
	c.promote.start(c.sched, delay, c.onPromote)
	c.mu.Unlock()

	if show != nil {
		show()
	}
}

func (c *Coordinator) onPromote(token uint64) {
	c.post(func() {
		c.mu.Lock()
		if !c.promote.current(token) || c.level == Hidden {
			c.mu.Unlock()
			return
		}
		c.promote.timer = nil
		c.level = Extended
		seq := c.seq
		c.mu.Unlock()

		c.display.ShowExtended(seq, c.resolver.Candidates(seq))
	})
}

// OnRelease resolves and executes the finished gesture, then schedules the
// hint cleanup. It returns the executed command, or nil.
func (c *Coordinator) OnRelease(seq gesture.Sequence, ev any) *command.Command {
	c.mu.Lock()
	c.promote.clear()
	c.mu.Unlock()

	var cmd *command.Command
	if seq != "" {
		cmd = c.resolver.ResolveGesture(seq)
	}
	if cmd != nil {
		c.logger.Debug("gesture %s -> %s", string(seq), cmd.ID)
		c.executor.ExecuteGesture(cmd, ev)
		if c.recent != nil {
			if err := c.recent.Add(cmd.ID); err != nil {
				c.logger.Error("recording recent command: %v", err)
			}
		}
	}

	c.mu.Lock()
	c.downgrade.start(c.sched, c.cfg.DowngradeDelay, func(token uint64) {
		c.onDowngrade(token, cmd)
	})
	c.mu.Unlock()
	return cmd
}

func (c *Coordinator) onDowngrade(token uint64, cmd *command.Command) {
	c.post(func() {
		c.mu.Lock()
		if !c.downgrade.current(token) {
			c.mu.Unlock()
			return
		}
		c.downgrade.timer = nil
		wasVisible := c.level != Hidden
		linger := cmd != nil && !cmd.Navigation && c.training()

		var show func()
		switch {
		case linger:
			c.level = Basic
			c.label = cmd.Label
			label, g := cmd.Label, cmd.Gesture()
			show = func() { c.display.ShowBasic(label, g) }
		case wasVisible:
			c.level = Hidden
			c.label = ""
			c.seq = ""
			show = c.display.Clear
		}
		c.mu.Unlock()

		if show != nil {
			show()
		}
	})
}

// Cancel hides every hint and drops pending timers.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.promote.clear()
	c.downgrade.clear()
	wasVisible := c.level != Hidden
	c.level = Hidden
	c.label = ""
	c.seq = ""
	c.mu.Unlock()

	if wasVisible {
		c.display.Clear()
	}
}
