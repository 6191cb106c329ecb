package command

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/logging"
)

// Indices are the three lookup tables built from a command list.
type Indices struct {
	// ByKey maps a chord hash to the first command registered for it.
	ByKey map[string]*Command
	// ByID maps command ids.
	ByID map[string]*Command
	// ByGesture maps every gesture alias; the last registration wins.
	ByGesture map[gesture.Sequence]*Command
	// Conflicts maps a command id to the ids it collided with.
	Conflicts map[string][]string
}

// BuildIndices indexes commands. Chord collisions keep the earlier
// command; gesture collisions keep the later one. Both are logged and
// recorded in Conflicts for every command involved.
func BuildIndices(commands []*Command, logger *logging.Logger) Indices {
	logger = logging.OrNop(logger)
	idx := Indices{
		ByKey:     make(map[string]*Command),
		ByID:      make(map[string]*Command, len(commands)),
		ByGesture: make(map[gesture.Sequence]*Command),
		Conflicts: make(map[string][]string),
	}

	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if prev, ok := idx.ByID[cmd.ID]; ok {
			logger.Warn("duplicate command id %q, keeping first (%s)", cmd.ID, prev.Label)
			continue
		}
		idx.ByID[cmd.ID] = cmd

		for _, chord := range cmd.Keyboard {
			hash := chord.Hash()
			if prev, ok := idx.ByKey[hash]; ok {
				if prev.ID == cmd.ID {
					continue
				}
				logger.WithField("chord", hash).Warn("chord conflict: %s and %s, keeping %s", prev.ID, cmd.ID, prev.ID)
				idx.addConflict(prev.ID, cmd.ID)
				continue
			}
			idx.ByKey[hash] = cmd
		}

		for _, g := range cmd.Gestures {
			if prev, ok := idx.ByGesture[g]; ok && prev.ID != cmd.ID {
				logger.WithField("gesture", string(g)).Warn("gesture conflict: %s and %s, keeping %s", prev.ID, cmd.ID, cmd.ID)
				idx.addConflict(prev.ID, cmd.ID)
			}
			idx.ByGesture[g] = cmd
		}
	}
	return idx
}

func (idx Indices) addConflict(a, b string) {
	idx.Conflicts[a] = appendUnique(idx.Conflicts[a], b)
	idx.Conflicts[b] = appendUnique(idx.Conflicts[b], a)
}

func appendUnique(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

// Triggered describes one command execution.
type Triggered struct {
	Command *Command
	Type    InvocationType
	// Cursors is the number of cursors the command ran on; 1 for a
	// single-cursor execution.
	Cursors int
	Time    time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = logging.OrNop(l).WithComponent("command")
	}
}

// Registry holds the command list and its indices. The indices are built
// once at construction and never change.
type Registry struct {
	commands []*Command
	idx      Indices
	logger   *logging.Logger

	mu        sync.RWMutex
	observers map[string]func(Triggered)
	order     []string
}

// NewRegistry builds a registry over commands.
func NewRegistry(commands []*Command, opts ...Option) *Registry {
	r := &Registry{
		logger:    logging.Nop(),
		observers: make(map[string]func(Triggered)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.commands = append([]*Command(nil), commands...)
	r.idx = BuildIndices(r.commands, r.logger)
	r.logger.Debug("indexed %d commands, %d chords, %d gestures",
		len(r.idx.ByID), len(r.idx.ByKey), len(r.idx.ByGesture))
	return r
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.commands...)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.idx.ByID)
}

// ByID returns the command with id, or nil.
func (r *Registry) ByID(id string) *Command {
	return r.idx.ByID[id]
}

// ByKeyHash returns the command bound to a chord hash, or nil.
func (r *Registry) ByKeyHash(hash string) *Command {
	return r.idx.ByKey[hash]
}

// ByChord returns the command bound to c, or nil.
func (r *Registry) ByChord(c key.Chord) *Command {
	return r.idx.ByKey[c.Hash()]
}

// ByGesture returns the command registered for seq, or nil.
func (r *Registry) ByGesture(seq gesture.Sequence) *Command {
	return r.idx.ByGesture[seq]
}

// Conflicts returns the ids that collided with id.
func (r *Registry) Conflicts(id string) []string {
	return append([]string(nil), r.idx.Conflicts[id]...)
}

// AllConflicts returns every command id with conflicts, sorted.
func (r *Registry) AllConflicts() map[string][]string {
	out := make(map[string][]string, len(r.idx.Conflicts))
	for id, ids := range r.idx.Conflicts {
		c := append([]string(nil), ids...)
		sort.Strings(c)
		out[id] = c
	}
	return out
}

// Subscribe registers fn to be told about every executed command.
func (r *Registry) Subscribe(fn func(Triggered)) (unsubscribe func()) {
	id := uuid.NewString()

	r.mu.Lock()
	r.observers[id] = fn
	r.order = append(r.order, id)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
		for i, x := range r.order {
			if x == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// Notify informs observers, in subscription order, that a command ran.
func (r *Registry) Notify(t Triggered) {
	if t.Time.IsZero() {
		t.Time = time.Now()
	}

	r.mu.RLock()
	fns := make([]func(Triggered), 0, len(r.order))
	for _, id := range r.order {
		fns = append(fns, r.observers[id])
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(t)
	}
}
