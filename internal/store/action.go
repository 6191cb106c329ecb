package store

import (
	"github.com/dshills/mindchord/internal/thought"
)

// Action names understood by the built-in reducers.
const (
	ActionSetCursor               = "setCursor"
	ActionCursorUp                = "cursorUp"
	ActionCursorDown              = "cursorDown"
	ActionAddMulticursor          = "addMulticursor"
	ActionRemoveMulticursor       = "removeMulticursor"
	ActionToggleMulticursor       = "toggleMulticursor"
	ActionSetMulticursors         = "setMulticursors"
	ActionClearMulticursors       = "clearMulticursors"
	ActionSetMulticursorExecuting = "setMulticursorExecuting"
	ActionAlert                   = "alert"
	ActionClearAlert              = "clearAlert"
	ActionNewThought              = "newThought"
	ActionNewSubthought           = "newSubthought"
	ActionEditThought             = "editThought"
	ActionDeleteThought           = "deleteThought"
	ActionIndent                  = "indent"
	ActionOutdent                 = "outdent"
	ActionMoveUp                  = "moveThoughtUp"
	ActionMoveDown                = "moveThoughtDown"
	ActionUndo                    = "undo"
	ActionRedo                    = "redo"
	ActionSetPaletteOpen          = "setPaletteOpen"
	ActionSetCheatsheetOpen       = "setCheatsheetOpen"
	ActionCopy                    = "copy"
)

// Args carries action parameters. Fields a reducer does not use are ignored.
type Args struct {
	// Path targets a thought; when nil reducers use the cursor.
	Path thought.Path
	// Paths is used by actions over several thoughts.
	Paths []thought.Path
	// Value is thought text or another string payload.
	Value string
	// Label names the multicursor batch.
	Label string
	// Message is alert text.
	Message string
	// Flag is the boolean payload of set* actions.
	Flag bool
	// Above inserts a new thought before the target instead of after it.
	Above bool
	// PreserveMulticursor keeps the selection when the cursor moves.
	PreserveMulticursor bool

	// Extra holds additional key-value pairs, e.g. from scripts.
	Extra map[string]any
}

// GetString retrieves a string value from Extra.
func (a Args) GetString(key string) string {
	if v, ok := a.Extra[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Action is a named state mutation.
type Action struct {
	Name string
	Args Args
}

func (a Action) dispatchTo(s *Store) {
	s.apply(a)
}

// NewAction builds an action.
func NewAction(name string, args Args) Action {
	return Action{Name: name, Args: args}
}

// SetCursor returns an action focusing p.
func SetCursor(p thought.Path) Action {
	return Action{Name: ActionSetCursor, Args: Args{Path: p}}
}

// Alert returns an action showing message to the user.
func Alert(message string) Action {
	return Action{Name: ActionAlert, Args: Args{Message: message}}
}

// Batch dispatches several actions in order.
type Batch []Action

func (b Batch) dispatchTo(s *Store) {
	for _, a := range b {
		s.apply(a)
	}
}

// DispatchFunc sends actions to the store.
type DispatchFunc func(items ...Dispatchable)

// GetStateFunc returns the current snapshot.
type GetStateFunc func() *State

// Thunk is a deferred action that can read state and dispatch further.
type Thunk func(dispatch DispatchFunc, getState GetStateFunc)

func (t Thunk) dispatchTo(s *Store) {
	t(s.Dispatch, s.State)
}

// Dispatchable is anything the store accepts: Action, Batch or Thunk.
type Dispatchable interface {
	dispatchTo(s *Store)
}
