// Package command defines command descriptors, the registry that indexes
// them by chord, id and gesture, and the resolver that maps finished
// gestures and chords to commands.
package command

import (
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// InvocationType tells a command where it was triggered from.
type InvocationType string

// Invocation types.
const (
	Keyboard       InvocationType = "keyboard"
	Gesture        InvocationType = "gesture"
	Toolbar        InvocationType = "toolbar"
	CommandPalette InvocationType = "commandPalette"
	CommandCenter  InvocationType = "commandCenter"
	ChainedGesture InvocationType = "chainedGesture"
)

// ExecFunc performs a command. ev is the platform event that triggered it
// and is passed through untouched.
type ExecFunc func(dispatch store.DispatchFunc, getState store.GetStateFunc, ev any, t InvocationType)

// BatchFunc executes a command across all cursors at once.
type BatchFunc func(cursors []thought.Path, dispatch store.DispatchFunc, getState store.GetStateFunc, ev any, t InvocationType)

// Filter selects which cursors of a multicursor batch run the command.
type Filter string

// Cursor filters.
const (
	FilterAll            Filter = "all"
	FilterFirstSibling   Filter = "first-sibling"
	FilterLastSibling    Filter = "last-sibling"
	FilterPreferAncestor Filter = "prefer-ancestor"
)

// MulticursorPolicy controls execution across several cursors.
//
// A nil policy disables multicursor execution: the command runs once on
// the primary cursor. MulticursorIgnore has the same execution behavior but
// marks the command as safe to run while a selection exists. An empty
// policy enables multicursor execution with every default.
type MulticursorPolicy struct {
	// Disallow rejects execution with an alert.
	Disallow bool
	// Error is the alert shown when Disallow is set.
	Error string
	// ErrorFunc computes the alert from state; it wins over Error.
	ErrorFunc func(st *store.State) string

	// Exec replaces per-cursor execution.
	Exec BatchFunc

	// PreventSetCursor leaves the cursor where the batch put it.
	PreventSetCursor bool
	// Reverse runs cursors in reverse document order.
	Reverse bool
	// ClearMulticursor drops the selection after the batch.
	ClearMulticursor bool
	// Filter defaults to FilterAll.
	Filter Filter

	// OnComplete is called with the cursors that ran.
	OnComplete func(cursors []thought.Path, dispatch store.DispatchFunc, getState store.GetStateFunc)

	ignore bool
}

// MulticursorIgnore runs the command once even when cursors are selected.
var MulticursorIgnore = &MulticursorPolicy{ignore: true}

// MulticursorEnabled returns the default policy.
func MulticursorEnabled() *MulticursorPolicy {
	return &MulticursorPolicy{}
}

// Active reports whether the policy requests batch execution.
func (p *MulticursorPolicy) Active() bool {
	return p != nil && !p.ignore
}

// Ignored reports whether p is the ignore sentinel.
func (p *MulticursorPolicy) Ignored() bool {
	return p != nil && p.ignore
}

// Command is an immutable command descriptor.
type Command struct {
	ID    string
	Label string
	// InverseLabel is shown instead of Label while IsActive reports true.
	InverseLabel string
	Description  string
	Icon         string

	// Gestures lists equivalent gestures; the first is canonical.
	Gestures []gesture.Sequence
	// Keyboard lists chords that trigger the command.
	Keyboard []key.Chord

	Exec       ExecFunc
	CanExecute func(st *store.State) bool
	IsActive   func(st *store.State) bool

	Multicursor *MulticursorPolicy

	// IsChainable reports whether other may follow this command in one
	// uninterrupted gesture. Nil means the command is not chainable.
	IsChainable func(other *Command) bool

	HideFromHelp    bool
	HideFromPalette bool
	// Navigation marks commands that only move the cursor.
	Navigation bool

	// Source is the chainable command a chained command was built from.
	Source *Command
}

// Gesture returns the canonical gesture, or "".
func (c *Command) Gesture() gesture.Sequence {
	if len(c.Gestures) == 0 {
		return ""
	}
	return c.Gestures[0]
}

// Chainable reports whether c accepts chained commands.
func (c *Command) Chainable() bool {
	return c.IsChainable != nil
}

// Allowed reports whether the command may run in st.
func (c *Command) Allowed(st *store.State) bool {
	return c.CanExecute == nil || c.CanExecute(st)
}

// DisplayLabel returns the label for st, honoring InverseLabel.
func (c *Command) DisplayLabel(st *store.State) string {
	if c.InverseLabel != "" && c.IsActive != nil && st != nil && c.IsActive(st) {
		return c.InverseLabel
	}
	return c.Label
}

// Run invokes Exec if set.
func (c *Command) Run(dispatch store.DispatchFunc, getState store.GetStateFunc, ev any, t InvocationType) {
	if c.Exec != nil {
		c.Exec(dispatch, getState, ev, t)
	}
}
