// Package commands defines the built-in command set.
package commands

import (
	"fmt"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// Built-in command ids.
const (
	IDNewThought         = "newThought"
	IDNewThoughtAbove    = "newThoughtAbove"
	IDNewSubthought      = "newSubthought"
	IDDeleteThought      = "deleteThought"
	IDIndent             = "indent"
	IDOutdent            = "outdent"
	IDMoveThoughtUp      = "moveThoughtUp"
	IDMoveThoughtDown    = "moveThoughtDown"
	IDCursorUp           = "cursorUp"
	IDCursorDown         = "cursorDown"
	IDSelectAll          = "selectAll"
	IDClearMulticursor   = "clearMulticursor"
	IDUndo               = "undo"
	IDRedo               = "redo"
	IDCheatsheet         = "cheatsheet"
	IDOpenCommandPalette = "openCommandPalette"
	IDToggleTraining     = "toggleTrainingMode"
	IDCopyCursor         = "copyCursor"
)

// Env supplies the collaborators a few commands need. Fields are read when
// a command runs, so the app may fill them after the registry is built.
// Nil fields degrade to store-only behavior.
type Env struct {
	// OpenPalette shows the command palette.
	OpenPalette func()
	// ToggleTraining flips training mode and returns the new value.
	ToggleTraining func() (bool, error)
	// Training reports the current training mode.
	Training func() bool
}

func act(name string, args store.Args) command.ExecFunc {
	return func(dispatch store.DispatchFunc, _ store.GetStateFunc, _ any, _ command.InvocationType) {
		dispatch(store.NewAction(name, args))
	}
}

func gestures(specs ...string) []gesture.Sequence {
	out := make([]gesture.Sequence, len(specs))
	for i, s := range specs {
		seq, err := gesture.ParseSequence(s)
		if err != nil {
			panic(fmt.Sprintf("commands: gesture %q: %v", s, err))
		}
		out[i] = seq
	}
	return out
}

func chords(specs ...string) []key.Chord {
	out := make([]key.Chord, len(specs))
	for i, s := range specs {
		out[i] = key.MustParseChord(s)
	}
	return out
}

func hasCursor(st *store.State) bool {
	return st.Cursor != nil
}

// Builtins returns a fresh copy of the built-in commands.
func Builtins(env *Env) []*command.Command {
	if env == nil {
		env = &Env{}
	}

	return []*command.Command{
		{
			ID:          IDNewThought,
			Label:       "New Thought",
			Description: "Create a new thought after the cursor.",
			Gestures:    gestures("rd"),
			Keyboard:    chords("Enter"),
			Exec:        act(store.ActionNewThought, store.Args{}),
			Multicursor: &command.MulticursorPolicy{Filter: command.FilterLastSibling},
		},
		{
			ID:          IDNewThoughtAbove,
			Label:       "New Thought Above",
			Description: "Create a new thought before the cursor.",
			Gestures:    gestures("rul"),
			Keyboard:    chords("Shift+Enter"),
			Exec:        act(store.ActionNewThought, store.Args{Above: true}),
			Multicursor: &command.MulticursorPolicy{Filter: command.FilterFirstSibling},
		},
		{
			ID:          IDNewSubthought,
			Label:       "New Subthought",
			Description: "Create a new thought inside the cursor.",
			Gestures:    gestures("rdr"),
			Keyboard:    chords("Meta+Enter"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionNewSubthought, store.Args{}),
			Multicursor: &command.MulticursorPolicy{
				Disallow: true,
				Error:    "Cannot create a subthought with multiple thoughts selected.",
			},
		},
		{
			ID:          IDDeleteThought,
			Label:       "Delete",
			Description: "Delete the thought and its subthoughts.",
			Gestures:    gestures("ldl"),
			Keyboard:    chords("Meta+Shift+Backspace"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionDeleteThought, store.Args{}),
			Multicursor: &command.MulticursorPolicy{
				Filter:           command.FilterPreferAncestor,
				ClearMulticursor: true,
				PreventSetCursor: true,
			},
		},
		{
			ID:          IDIndent,
			Label:       "Indent",
			Description: "Move the thought into its previous sibling.",
			Gestures:    gestures("rlr"),
			Keyboard:    chords("Tab"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionIndent, store.Args{}),
			Multicursor: command.MulticursorEnabled(),
		},
		{
			ID:          IDOutdent,
			Label:       "Outdent",
			Description: "Move the thought out of its parent.",
			Gestures:    gestures("lrl"),
			Keyboard:    chords("Shift+Tab"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionOutdent, store.Args{}),
			Multicursor: &command.MulticursorPolicy{
				Filter:  command.FilterPreferAncestor,
				Reverse: true,
			},
		},
		{
			ID:          IDMoveThoughtUp,
			Label:       "Move Up",
			Description: "Swap the thought with its previous sibling.",
			Keyboard:    chords("Meta+Shift+ArrowUp"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionMoveUp, store.Args{}),
			Multicursor: command.MulticursorEnabled(),
		},
		{
			ID:          IDMoveThoughtDown,
			Label:       "Move Down",
			Description: "Swap the thought with its next sibling.",
			Keyboard:    chords("Meta+Shift+ArrowDown"),
			CanExecute:  hasCursor,
			Exec:        act(store.ActionMoveDown, store.Args{}),
			Multicursor: &command.MulticursorPolicy{Reverse: true},
		},
		{
			ID:           IDCursorUp,
			Label:        "Cursor Up",
			Keyboard:     chords("ArrowUp"),
			Exec:         act(store.ActionCursorUp, store.Args{}),
			Multicursor:  command.MulticursorIgnore,
			Navigation:   true,
			HideFromHelp: true,
		},
		{
			ID:           IDCursorDown,
			Label:        "Cursor Down",
			Keyboard:     chords("ArrowDown"),
			Exec:         act(store.ActionCursorDown, store.Args{}),
			Multicursor:  command.MulticursorIgnore,
			Navigation:   true,
			HideFromHelp: true,
		},
		{
			ID:          IDSelectAll,
			Label:       "Select All",
			Description: "Select the cursor and all of its siblings. Continue the gesture to apply another command to them.",
			Gestures:    gestures("ldr"),
			Keyboard:    chords("Meta+a"),
			Exec:        selectAll,
			Multicursor: command.MulticursorIgnore,
			IsChainable: func(other *command.Command) bool {
				return other.Multicursor.Active()
			},
		},
		{
			ID:          IDClearMulticursor,
			Label:       "Clear Selection",
			Keyboard:    chords("Escape"),
			CanExecute:  (*store.State).HasMulticursors,
			Exec:        act(store.ActionClearMulticursors, store.Args{}),
			Multicursor: command.MulticursorIgnore,
			Navigation:  true,
		},
		{
			ID:          IDUndo,
			Label:       "Undo",
			Gestures:    gestures("lrdl"),
			Keyboard:    chords("Meta+z"),
			Exec:        act(store.ActionUndo, store.Args{}),
			Multicursor: command.MulticursorIgnore,
		},
		{
			ID:          IDRedo,
			Label:       "Redo",
			Gestures:    gestures("rldr"),
			Keyboard:    chords("Meta+Shift+z"),
			Exec:        act(store.ActionRedo, store.Args{}),
			Multicursor: command.MulticursorIgnore,
		},
		{
			ID:          IDCheatsheet,
			Label:       "Cheatsheet",
			Description: "Show every gesture.",
			Gestures:    gestures("rdld", "rdldl"),
			Keyboard:    chords("F1"),
			Exec:        toggleCheatsheet,
			Multicursor: command.MulticursorIgnore,
			IsActive:    func(st *store.State) bool { return st.CheatsheetOpen },
		},
		{
			ID:              IDOpenCommandPalette,
			Label:           "Command Palette",
			Keyboard:        chords("Meta+p"),
			Exec:            openPalette(env),
			Multicursor:     command.MulticursorIgnore,
			HideFromPalette: true,
		},
		{
			ID:           IDToggleTraining,
			Label:        "Enable Training Mode",
			InverseLabel: "Disable Training Mode",
			Description:  "Keep the gesture hint on screen after a command runs.",
			Keyboard:     chords("Meta+Alt+t"),
			Exec:         toggleTraining(env),
			IsActive: func(*store.State) bool {
				return env.Training != nil && env.Training()
			},
			Multicursor: command.MulticursorIgnore,
		},
		{
			ID:          IDCopyCursor,
			Label:       "Copy",
			Description: "Copy the thought text.",
			Keyboard:    chords("Meta+c"),
			CanExecute:  hasCursor,
			Exec:        copyCursor,
			Multicursor: &command.MulticursorPolicy{
				Exec: copyBatch,
			},
		},
	}
}

func selectAll(dispatch store.DispatchFunc, getState store.GetStateFunc, _ any, _ command.InvocationType) {
	st := getState()
	parent, base := thought.Root, thought.Path(nil)
	if st.Cursor != nil {
		parent, base = st.Cursor.ParentID(), st.Cursor.Parent()
	}
	var paths []thought.Path
	for _, id := range st.Tree.Children(parent) {
		paths = append(paths, base.Append(id))
	}
	dispatch(store.NewAction(store.ActionSetMulticursors, store.Args{Paths: paths}))
}

func toggleCheatsheet(dispatch store.DispatchFunc, getState store.GetStateFunc, _ any, _ command.InvocationType) {
	dispatch(store.NewAction(store.ActionSetCheatsheetOpen, store.Args{Flag: !getState().CheatsheetOpen}))
}

func openPalette(env *Env) command.ExecFunc {
	return func(dispatch store.DispatchFunc, _ store.GetStateFunc, _ any, _ command.InvocationType) {
		if env.OpenPalette != nil {
			env.OpenPalette()
			return
		}
		dispatch(store.NewAction(store.ActionSetPaletteOpen, store.Args{Flag: true}))
	}
}

func toggleTraining(env *Env) command.ExecFunc {
	return func(dispatch store.DispatchFunc, _ store.GetStateFunc, _ any, _ command.InvocationType) {
		if env.ToggleTraining == nil {
			return
		}
		on, err := env.ToggleTraining()
		switch {
		case err != nil:
			dispatch(store.Alert("Could not save training mode"))
		case on:
			dispatch(store.Alert("Training mode on"))
		default:
			dispatch(store.Alert("Training mode off"))
		}
	}
}

func copyCursor(dispatch store.DispatchFunc, getState store.GetStateFunc, _ any, _ command.InvocationType) {
	st := getState()
	dispatch(store.NewAction(store.ActionCopy, store.Args{}))
	dispatch(store.Alert(fmt.Sprintf("Copied %q", st.CursorValue())))
}

func copyBatch(cursors []thought.Path, dispatch store.DispatchFunc, _ store.GetStateFunc, _ any, _ command.InvocationType) {
	dispatch(store.NewAction(store.ActionCopy, store.Args{Paths: cursors}))
	dispatch(store.Alert(fmt.Sprintf("Copied %d thoughts", len(cursors))))
}
