package commands

import (
	"testing"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/multicursor"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// newStore builds:
//
//	a
//	  a1
//	  a2
//	b
func newStore(t *testing.T, cursor thought.Path, selected ...thought.Path) *store.Store {
	t.Helper()
	tr := thought.New()
	for _, e := range []struct{ id, parent thought.ID }{
		{"a", thought.Root}, {"a1", "a"}, {"a2", "a"}, {"b", thought.Root},
	} {
		if err := tr.Insert(e.id, e.parent, -1, string(e.id)); err != nil {
			t.Fatal(err)
		}
	}
	st := store.NewState(tr)
	st.Cursor = cursor
	st.Multicursors = selected
	return store.New(st)
}

func TestBuiltinsIndexCleanly(t *testing.T) {
	cmds := Builtins(nil)
	reg := command.NewRegistry(cmds)
	if reg.Len() != len(cmds) {
		t.Errorf("Len() = %d, want %d (duplicate ids?)", reg.Len(), len(cmds))
	}
	if c := reg.AllConflicts(); len(c) != 0 {
		t.Errorf("AllConflicts() = %v, want none", c)
	}
}

func TestBuiltinGesturesStartHorizontally(t *testing.T) {
	for _, c := range Builtins(nil) {
		for _, g := range c.Gestures {
			if g.First().IsVertical() {
				t.Errorf("%s gesture %s starts vertically and can never be recognized", c.ID, g)
			}
		}
	}
}

func TestSelectAllChainsIntoDelete(t *testing.T) {
	s := newStore(t, thought.Path{"a", "a1"})
	reg := command.NewRegistry(Builtins(nil))
	r := command.NewResolver(reg, command.WithCheatsheet(IDCheatsheet))
	e := multicursor.NewExecutor(s, multicursor.WithRegistry(reg))

	c := r.ResolveGesture("ldrldl")
	if c == nil || c.Source == nil {
		t.Fatalf("ResolveGesture(ldrldl) = %v, want chained command", c)
	}
	if c.Source.ID != IDSelectAll || c.ID != IDDeleteThought {
		t.Fatalf("chain = %s + %s", c.Source.ID, c.ID)
	}
	if c.Label != "Select All + Delete" {
		t.Errorf("Label = %q", c.Label)
	}

	e.ExecuteGesture(c, nil)

	tr := s.State().Tree
	if got := len(tr.Children("a")); got != 0 {
		t.Errorf("a has %d children, want 0", got)
	}
	if s.State().HasMulticursors() {
		t.Error("delete should clear the selection")
	}

	s.Dispatch(store.NewAction(store.ActionUndo, store.Args{}))
	if got := len(s.State().Tree.Children("a")); got != 2 {
		t.Errorf("after one undo a has %d children, want 2", got)
	}
}

func TestNewThoughtLastSibling(t *testing.T) {
	s := newStore(t, thought.Path{"b"},
		thought.Path{"a", "a1"}, thought.Path{"a", "a2"}, thought.Path{"b"})
	e := multicursor.NewExecutor(s)
	reg := command.NewRegistry(Builtins(nil))

	e.Execute(reg.ByID(IDNewThought), nil, command.Keyboard)

	tr := s.State().Tree
	if got := len(tr.Children("a")); got != 3 {
		t.Errorf("a has %d children, want 3", got)
	}
	if got := len(tr.Children(thought.Root)); got != 3 {
		t.Errorf("root has %d children, want 3", got)
	}
	if kids := tr.Children("a"); kids[0] != "a1" || kids[1] != "a2" {
		t.Errorf("new thought should follow the last sibling: %v", kids)
	}
}

func TestNewSubthoughtDisallowed(t *testing.T) {
	s := newStore(t, thought.Path{"b"}, thought.Path{"a"}, thought.Path{"b"})
	e := multicursor.NewExecutor(s)
	reg := command.NewRegistry(Builtins(nil))
	before := s.State().Tree.Len()

	e.Execute(reg.ByID(IDNewSubthought), nil, command.Keyboard)

	if s.State().Alert == "" {
		t.Error("expected an alert")
	}
	if s.State().Tree.Len() != before {
		t.Error("disallowed command modified the tree")
	}
}

func TestCopyBatchUsesDocumentOrder(t *testing.T) {
	s := newStore(t, thought.Path{"b"}, thought.Path{"b"}, thought.Path{"a", "a1"})
	e := multicursor.NewExecutor(s)
	reg := command.NewRegistry(Builtins(nil))

	e.Execute(reg.ByID(IDCopyCursor), nil, command.Keyboard)

	clip := s.State().Clipboard
	if len(clip) != 2 || clip[0] != "a1" || clip[1] != "b" {
		t.Errorf("Clipboard = %v, want [a1 b]", clip)
	}
	if s.State().Alert != "Copied 2 thoughts" {
		t.Errorf("Alert = %q", s.State().Alert)
	}
}

func TestToggleTrainingLabel(t *testing.T) {
	on := false
	env := &Env{
		Training: func() bool { return on },
		ToggleTraining: func() (bool, error) {
			on = !on
			return on, nil
		},
	}
	s := newStore(t, nil)
	reg := command.NewRegistry(Builtins(env))
	c := reg.ByID(IDToggleTraining)

	if got := c.DisplayLabel(s.State()); got != "Enable Training Mode" {
		t.Errorf("DisplayLabel() = %q", got)
	}
	c.Run(s.Dispatch, s.State, nil, command.Keyboard)
	if !on || s.State().Alert != "Training mode on" {
		t.Errorf("on = %v, Alert = %q", on, s.State().Alert)
	}
	if got := c.DisplayLabel(s.State()); got != "Disable Training Mode" {
		t.Errorf("DisplayLabel() = %q", got)
	}
}

func TestOpenPaletteFallsBackToStore(t *testing.T) {
	s := newStore(t, nil)
	reg := command.NewRegistry(Builtins(nil))
	reg.ByID(IDOpenCommandPalette).Run(s.Dispatch, s.State, nil, command.Keyboard)
	if !s.State().PaletteOpen {
		t.Error("PaletteOpen = false")
	}

	opened := false
	reg = command.NewRegistry(Builtins(&Env{OpenPalette: func() { opened = true }}))
	reg.ByID(IDOpenCommandPalette).Run(s.Dispatch, s.State, nil, command.Keyboard)
	if !opened {
		t.Error("Env.OpenPalette not called")
	}
}

func TestCheatsheetAlias(t *testing.T) {
	reg := command.NewRegistry(Builtins(nil))
	r := command.NewResolver(reg, command.WithCheatsheet(IDCheatsheet))
	if c := r.ResolveGesture("lrdld"); c == nil || c.ID != IDCheatsheet {
		t.Errorf("ResolveGesture(lrdld) = %v, want cheatsheet", c)
	}
}
