package store

import (
	"github.com/dshills/mindchord/internal/thought"
)

// State is an immutable application snapshot. Reducers return a new State
// and never modify the one they were given.
type State struct {
	// Tree is the document. Shared between snapshots until a reducer
	// mutates it, at which point it is cloned.
	Tree *thought.Tree

	// Cursor is the focused path; nil when nothing is focused.
	Cursor thought.Path

	// Multicursors is the set of selected paths. Order carries no meaning.
	Multicursors []thought.Path

	// MulticursorExecuting is true while a command runs across cursors.
	MulticursorExecuting bool
	// MulticursorLabel names the command being executed across cursors.
	MulticursorLabel string

	// Alert is a user-facing message; empty when none is shown.
	Alert string

	PaletteOpen    bool
	CheatsheetOpen bool

	// Clipboard holds the values copied by the last copy action.
	Clipboard []string
}

// NewState returns a state over tree with nothing focused.
func NewState(tree *thought.Tree) *State {
	if tree == nil {
		tree = thought.New()
	}
	return &State{Tree: tree}
}

// clone returns a shallow copy with its own slices.
func (s *State) clone() *State {
	c := *s
	c.Cursor = s.Cursor.Clone()
	if s.Multicursors != nil {
		c.Multicursors = make([]thought.Path, len(s.Multicursors))
		for i, p := range s.Multicursors {
			c.Multicursors[i] = p.Clone()
		}
	}
	c.Clipboard = append([]string(nil), s.Clipboard...)
	return &c
}

// HasMulticursors reports whether any path is selected.
func (s *State) HasMulticursors() bool {
	return len(s.Multicursors) > 0
}

// IsMulticursor reports whether p is selected.
func (s *State) IsMulticursor(p thought.Path) bool {
	return indexOfPath(s.Multicursors, p) >= 0
}

// CursorValue returns the text of the focused thought.
func (s *State) CursorValue() string {
	if s.Cursor == nil {
		return ""
	}
	th, _ := s.Tree.Get(s.Cursor.Leaf())
	return th.Value
}

func indexOfPath(paths []thought.Path, p thought.Path) int {
	for i, q := range paths {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}

// WithCursor returns a copy of s focused on p. Selection is unchanged.
func (s *State) WithCursor(p thought.Path) *State {
	c := s.clone()
	c.Cursor = p.Clone()
	return c
}
