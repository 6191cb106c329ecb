// Package store holds the application state and applies actions to it.
//
// The command engine only talks to the store through Dispatch and State.
// Actions are applied synchronously. Mutations to the thought tree are
// recorded in the undo history; a multicursor batch groups its mutations
// into one undo step through the setMulticursorExecuting action.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/mindchord/internal/history"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/thought"
)

// Store errors
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoTarget      = errors.New("no target thought")
)

// Reducer computes the next state. It receives a private copy of the
// current state and may modify and return it. Returning nil keeps the
// current state.
type Reducer func(s *Store, st *State, a Action) (*State, error)

type reducerEntry struct {
	fn Reducer
	// undoable reducers record the previous state in history.
	undoable bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrNop(l).WithComponent("store")
	}
}

// WithHistory sets the undo history.
func WithHistory(h *history.History[*State]) Option {
	return func(s *Store) {
		s.history = h
	}
}

// Store owns the current State.
type Store struct {
	mu sync.Mutex

	state    *State
	reducers map[string]reducerEntry
	history  *history.History[*State]
	logger   *logging.Logger

	subs   map[int]func(*State)
	nextID int
}

// New creates a store with the built-in reducers.
func New(initial *State, opts ...Option) *Store {
	if initial == nil {
		initial = NewState(nil)
	}
	s := &Store{
		state:    initial,
		reducers: make(map[string]reducerEntry),
		history:  history.New[*State](0),
		logger:   logging.Nop(),
		subs:     make(map[int]func(*State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	registerBuiltins(s)
	return s
}

// Register adds or replaces a reducer.
func (s *Store) Register(name string, fn Reducer, undoable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reducers[name] = reducerEntry{fn: fn, undoable: undoable}
}

// Known reports whether an action name has a reducer.
func (s *Store) Known(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reducers[name]
	return ok
}

// History returns the undo history.
func (s *Store) History() *history.History[*State] {
	return s.history
}

// State returns the current snapshot.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies actions, batches and thunks in order.
func (s *Store) Dispatch(items ...Dispatchable) {
	for _, it := range items {
		if it == nil {
			continue
		}
		it.dispatchTo(s)
	}
}

// Apply applies a single action and reports reducer errors.
func (s *Store) Apply(a Action) error {
	s.mu.Lock()
	entry, ok := s.reducers[a.Name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownAction, a.Name)
	}
	prev := s.state
	next, err := entry.fn(s, prev.clone(), a)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", a.Name, err)
	}
	if next == nil {
		s.mu.Unlock()
		return nil
	}
	if entry.undoable && next.Tree != prev.Tree {
		s.history.Record(a.Name, prev)
	}
	s.state = next
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

func (s *Store) apply(a Action) {
	if err := s.Apply(a); err != nil {
		s.logger.Debug("dispatch: %v", err)
	}
}

// Subscribe registers fn to be called after every state change.
func (s *Store) Subscribe(fn func(*State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) subscribersLocked() []func(*State) {
	out := make([]func(*State), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// target returns the path an action applies to.
func target(st *State, a Action) (thought.Path, error) {
	p := a.Args.Path
	if p == nil {
		p = st.Cursor
	}
	if p == nil {
		return nil, ErrNoTarget
	}
	if !st.Tree.Contains(p) {
		return nil, fmt.Errorf("%w: %s", thought.ErrNotFound, p)
	}
	return p, nil
}
