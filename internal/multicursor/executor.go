// Package multicursor executes commands across the selected cursors.
package multicursor

import (
	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// DefaultDisallowMessage is shown when a command refuses multicursor
// execution without its own message.
const DefaultDisallowMessage = "Cannot execute this command with multiple thoughts selected."

// Store is the state collaborator the executor drives.
type Store interface {
	Dispatch(items ...store.Dispatchable)
	State() *store.State
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Executor) {
		e.logger = logging.OrNop(l).WithComponent("multicursor")
	}
}

// WithRegistry sets the registry whose observers hear about executions.
func WithRegistry(r *command.Registry) Option {
	return func(e *Executor) {
		e.registry = r
	}
}

// Executor runs commands against one or many cursors.
type Executor struct {
	store    Store
	registry *command.Registry
	logger   *logging.Logger
}

// NewExecutor creates an executor over s.
func NewExecutor(s Store, opts ...Option) *Executor {
	e := &Executor{
		store:  s,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) dispatch(items ...store.Dispatchable) {
	e.store.Dispatch(items...)
}

func (e *Executor) getState() *store.State {
	return e.store.State()
}

// ExecuteGesture runs a command resolved from a gesture. A chained
// command runs its source first.
func (e *Executor) ExecuteGesture(cmd *command.Command, ev any) {
	if cmd == nil {
		return
	}
	if cmd.Source != nil {
		e.Execute(cmd.Source, ev, command.Gesture)
		e.Execute(cmd, ev, command.ChainedGesture)
		return
	}
	e.Execute(cmd, ev, command.Gesture)
}

// Execute runs cmd once, or across every selected cursor when the
// command's policy asks for it.
func (e *Executor) Execute(cmd *command.Command, ev any, t command.InvocationType) {
	if cmd == nil {
		return
	}
	st := e.getState()
	policy := cmd.Multicursor
	if !st.HasMulticursors() || !policy.Active() {
		e.executeSingle(cmd, ev, t, true)
		return
	}

	log := e.logger.WithField("command", cmd.ID)

	if policy.Disallow {
		msg := DefaultDisallowMessage
		switch {
		case policy.ErrorFunc != nil:
			msg = policy.ErrorFunc(st)
		case policy.Error != "":
			msg = policy.Error
		}
		log.Debug("multicursor disallowed")
		e.dispatch(store.Alert(msg))
		return
	}

	original := st.Tree.DocumentOrder(st.Multicursors)
	filtered := FilterCursors(original, policy.Filter)

	if cmd.CanExecute != nil {
		for _, p := range filtered {
			if !cmd.CanExecute(st.WithCursor(p)) {
				log.Debug("precondition failed at %s, batch aborted", p)
				return
			}
		}
	}

	if policy.Reverse {
		filtered = reversedCopy(filtered)
	}

	e.dispatch(store.NewAction(store.ActionSetMulticursorExecuting, store.Args{Flag: true, Label: cmd.ID}))
	defer e.dispatch(store.NewAction(store.ActionSetMulticursorExecuting, store.Args{Flag: false}))

	if policy.Exec != nil {
		policy.Exec(filtered, e.dispatch, e.getState, ev, t)
	} else {
		for _, p := range filtered {
			cur, ok := e.getState().Tree.Resolve(p.Leaf())
			if !ok {
				log.Debug("cursor %s no longer resolves, skipped", p)
				continue
			}
			e.dispatch(store.NewAction(store.ActionSetCursor, store.Args{Path: cur, PreserveMulticursor: true}))
			e.executeSingle(cmd, ev, t, false)
		}
	}

	if !policy.PreventSetCursor {
		e.restoreCursor(st.Cursor)
	}

	if policy.ClearMulticursor {
		e.dispatch(store.NewAction(store.ActionClearMulticursors, store.Args{}))
	} else {
		e.restoreSelection(original)
	}

	if policy.OnComplete != nil {
		policy.OnComplete(filtered, e.dispatch, e.getState)
	}

	if e.registry != nil {
		e.registry.Notify(command.Triggered{Command: cmd, Type: t, Cursors: len(filtered)})
	}
}

// executeSingle is the single-cursor path. A failed precondition is a
// silent no-op.
func (e *Executor) executeSingle(cmd *command.Command, ev any, t command.InvocationType, notify bool) bool {
	if !cmd.Allowed(e.getState()) {
		e.logger.Debug("%s: precondition failed", cmd.ID)
		return false
	}
	cmd.Run(e.dispatch, e.getState, ev, t)
	if notify && e.registry != nil {
		e.registry.Notify(command.Triggered{Command: cmd, Type: t, Cursors: 1})
	}
	return true
}

func (e *Executor) restoreCursor(prev thought.Path) {
	var next thought.Path
	if prev != nil {
		if p, ok := e.getState().Tree.Resolve(prev.Leaf()); ok {
			next = p
		}
	}
	e.dispatch(store.NewAction(store.ActionSetCursor, store.Args{Path: next, PreserveMulticursor: true}))
}

func (e *Executor) restoreSelection(original []thought.Path) {
	tree := e.getState().Tree
	var paths []thought.Path
	for _, p := range original {
		if cur, ok := tree.Resolve(p.Leaf()); ok {
			paths = append(paths, cur)
		}
	}
	e.dispatch(store.NewAction(store.ActionSetMulticursors, store.Args{Paths: paths}))
}
