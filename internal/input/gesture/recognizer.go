package gesture

import (
	"math"
	"sync"

	"github.com/dshills/mindchord/internal/logging"
)

// State is the recognizer's lifecycle state.
type State uint8

const (
	// StateIdle means no gesture has started.
	StateIdle State = iota
	// StateActive means an anchor has been established.
	StateActive
	// StateAbandoned means the drag was conceded to scrolling or
	// cancelled; moves are ignored until release.
	StateAbandoned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Config holds recognizer thresholds.
type Config struct {
	// MinDistance is how far the pointer must travel from the anchor
	// before a move counts. Compared squared.
	MinDistance float64

	// ScrollThreshold is the vertical scroll displacement after which an
	// active gesture is abandoned.
	ScrollThreshold float64
}

// DefaultConfig returns thresholds tuned for terminal cell coordinates.
func DefaultConfig() Config {
	return Config{
		MinDistance:     2,
		ScrollThreshold: 3,
	}
}

// Handlers receive recognizer notifications. Any field may be nil.
// Handlers are invoked without the recognizer lock held.
type Handlers struct {
	// OnStart fires when an anchor is established, including restarts
	// after a vertical false start.
	OnStart func()

	// OnSwipe fires for every newly committed direction.
	OnSwipe func(dir Direction, seq Sequence)

	// OnEnd fires exactly once per release with the final sequence and
	// the event that ended the drag.
	OnEnd func(seq Sequence, ev any)

	// OnCancel fires once when the drag is abandoned.
	OnCancel func()

	// ShouldCancel is evaluated on every move; returning true abandons
	// the drag.
	ShouldCancel func() bool
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Recognizer) {
		r.logger = logging.OrNop(l).WithComponent("gesture")
	}
}

// Recognizer turns pointer movement into a gesture Sequence.
// One Recognizer serves one input source.
type Recognizer struct {
	mu sync.Mutex

	cfg      Config
	minSq    float64
	handlers Handlers
	logger   *logging.Logger

	// hasOrigin is true once a press or first move has been seen.
	hasOrigin bool
	// anchor is the press point before start, then the point of the last
	// committed swipe.
	anchor    Point
	started   bool
	abandoned bool
	scrolled  float64
	seq       Sequence
}

// NewRecognizer creates a recognizer.
func NewRecognizer(cfg Config, h Handlers, opts ...Option) *Recognizer {
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = DefaultConfig().MinDistance
	}
	if cfg.ScrollThreshold <= 0 {
		cfg.ScrollThreshold = DefaultConfig().ScrollThreshold
	}
	r := &Recognizer{
		cfg:      cfg,
		minSq:    cfg.MinDistance * cfg.MinDistance,
		handlers: h,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetConfig replaces the thresholds. It takes effect on the next move.
func (r *Recognizer) SetConfig(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.MinDistance > 0 {
		r.cfg.MinDistance = cfg.MinDistance
		r.minSq = cfg.MinDistance * cfg.MinDistance
	}
	if cfg.ScrollThreshold > 0 {
		r.cfg.ScrollThreshold = cfg.ScrollThreshold
	}
}

// State returns the current lifecycle state.
func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Recognizer) stateLocked() State {
	switch {
	case r.abandoned:
		return StateAbandoned
	case r.started:
		return StateActive
	default:
		return StateIdle
	}
}

// Sequence returns the in-progress sequence.
func (r *Recognizer) Sequence() Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Press records the point where the drag begins.
func (r *Recognizer) Press(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
	r.hasOrigin = true
	r.anchor = p
}

// Move feeds a pointer position.
func (r *Recognizer) Move(p Point) {
	var notify []func()

	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		return
	}

	if r.handlers.ShouldCancel != nil && r.handlers.ShouldCancel() {
		notify = append(notify, r.abandonLocked("cancel predicate")...)
		r.mu.Unlock()
		run(notify)
		return
	}

	if !r.hasOrigin {
		r.hasOrigin = true
		r.anchor = p
		r.mu.Unlock()
		return
	}

	if r.anchor.DistanceSquared(p) <= r.minSq {
		r.mu.Unlock()
		return
	}

	if !r.started {
		r.started = true
		r.anchor = p
		if h := r.handlers.OnStart; h != nil {
			notify = append(notify, h)
		}
		r.mu.Unlock()
		run(notify)
		return
	}

	dir := DirectionBetween(r.anchor, p)
	r.anchor = p
	if dir == r.seq.Last() {
		r.mu.Unlock()
		return
	}

	if r.seq.Len() == 0 && dir.IsVertical() {
		// Vertical first swipe: let the page scroll and start over from here.
		r.logger.Debug("discarding vertical start %s", dir)
		r.started = false
		r.seq = ""
		r.mu.Unlock()
		return
	}

	r.seq = r.seq.Append(dir)
	seq := r.seq
	if h := r.handlers.OnSwipe; h != nil {
		notify = append(notify, func() { h(dir, seq) })
	}
	r.mu.Unlock()
	run(notify)
}

// Scroll reports vertical scroll displacement of the underlying view.
// An active gesture is abandoned once the accumulated displacement
// exceeds the scroll threshold.
func (r *Recognizer) Scroll(dy float64) {
	r.mu.Lock()
	if !r.started || r.abandoned {
		r.mu.Unlock()
		return
	}
	r.scrolled += math.Abs(dy)
	var notify []func()
	if r.scrolled > r.cfg.ScrollThreshold {
		notify = r.abandonLocked("scroll")
	}
	r.mu.Unlock()
	run(notify)
}

// Abandon concedes the current drag. Moves are ignored until Release.
func (r *Recognizer) Abandon() {
	r.mu.Lock()
	var notify []func()
	if !r.abandoned {
		notify = r.abandonLocked("explicit")
	}
	r.mu.Unlock()
	run(notify)
}

// Release ends the drag, emitting the final sequence exactly once, and
// returns the recognizer to idle.
func (r *Recognizer) Release(ev any) Sequence {
	r.mu.Lock()
	seq := r.seq
	if r.abandoned {
		seq = ""
	}
	h := r.handlers.OnEnd
	r.resetLocked()
	r.mu.Unlock()

	if h != nil {
		h(seq, ev)
	}
	return seq
}

func (r *Recognizer) abandonLocked(reason string) []func() {
	r.logger.Debug("gesture abandoned (%s) after %q", reason, string(r.seq))
	r.abandoned = true
	r.seq = ""
	if h := r.handlers.OnCancel; h != nil {
		return []func(){h}
	}
	return nil
}

func (r *Recognizer) resetLocked() {
	r.hasOrigin = false
	r.anchor = Point{}
	r.started = false
	r.abandoned = false
	r.scrolled = 0
	r.seq = ""
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
