package store

import (
	"github.com/dshills/mindchord/internal/thought"
)

func registerBuiltins(s *Store) {
	s.reducers[ActionSetCursor] = reducerEntry{fn: reduceSetCursor}
	s.reducers[ActionCursorUp] = reducerEntry{fn: reduceCursorStep(-1)}
	s.reducers[ActionCursorDown] = reducerEntry{fn: reduceCursorStep(1)}
	s.reducers[ActionAddMulticursor] = reducerEntry{fn: reduceAddMulticursor}
	s.reducers[ActionRemoveMulticursor] = reducerEntry{fn: reduceRemoveMulticursor}
	s.reducers[ActionToggleMulticursor] = reducerEntry{fn: reduceToggleMulticursor}
	s.reducers[ActionSetMulticursors] = reducerEntry{fn: reduceSetMulticursors}
	s.reducers[ActionClearMulticursors] = reducerEntry{fn: reduceClearMulticursors}
	s.reducers[ActionSetMulticursorExecuting] = reducerEntry{fn: reduceMulticursorExecuting}
	s.reducers[ActionAlert] = reducerEntry{fn: reduceAlert}
	s.reducers[ActionClearAlert] = reducerEntry{fn: reduceClearAlert}
	s.reducers[ActionSetPaletteOpen] = reducerEntry{fn: reduceSetPaletteOpen}
	s.reducers[ActionSetCheatsheetOpen] = reducerEntry{fn: reduceSetCheatsheetOpen}
	s.reducers[ActionCopy] = reducerEntry{fn: reduceCopy}
	s.reducers[ActionUndo] = reducerEntry{fn: reduceUndo}
	s.reducers[ActionRedo] = reducerEntry{fn: reduceRedo}

	s.reducers[ActionNewThought] = reducerEntry{fn: reduceNewThought, undoable: true}
	s.reducers[ActionNewSubthought] = reducerEntry{fn: reduceNewSubthought, undoable: true}
	s.reducers[ActionEditThought] = reducerEntry{fn: reduceEditThought, undoable: true}
	s.reducers[ActionDeleteThought] = reducerEntry{fn: reduceDeleteThought, undoable: true}
	s.reducers[ActionIndent] = reducerEntry{fn: reduceIndent, undoable: true}
	s.reducers[ActionOutdent] = reducerEntry{fn: reduceOutdent, undoable: true}
	s.reducers[ActionMoveUp] = reducerEntry{fn: reduceMoveSibling(-1), undoable: true}
	s.reducers[ActionMoveDown] = reducerEntry{fn: reduceMoveSibling(1), undoable: true}
}

func reduceSetCursor(_ *Store, st *State, a Action) (*State, error) {
	st.Cursor = a.Args.Path.Clone()
	if !a.Args.PreserveMulticursor {
		st.Multicursors = nil
	}
	return st, nil
}

func reduceCursorStep(delta int) Reducer {
	return func(_ *Store, st *State, _ Action) (*State, error) {
		visible := st.Tree.Visible()
		if len(visible) == 0 {
			return nil, nil
		}
		i := indexOfPath(visible, st.Cursor)
		switch {
		case i < 0 && delta > 0:
			i = 0
		case i < 0:
			i = len(visible) - 1
		default:
			i += delta
		}
		if i < 0 || i >= len(visible) {
			return nil, nil
		}
		st.Cursor = visible[i]
		return st, nil
	}
}

func reduceAddMulticursor(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}
	if st.IsMulticursor(p) {
		return nil, nil
	}
	st.Multicursors = append(st.Multicursors, p.Clone())
	return st, nil
}

func reduceRemoveMulticursor(_ *Store, st *State, a Action) (*State, error) {
	p := a.Args.Path
	if p == nil {
		p = st.Cursor
	}
	i := indexOfPath(st.Multicursors, p)
	if i < 0 {
		return nil, nil
	}
	st.Multicursors = append(st.Multicursors[:i], st.Multicursors[i+1:]...)
	return st, nil
}

func reduceToggleMulticursor(s *Store, st *State, a Action) (*State, error) {
	p := a.Args.Path
	if p == nil {
		p = st.Cursor
	}
	if st.IsMulticursor(p) {
		return reduceRemoveMulticursor(s, st, a)
	}
	return reduceAddMulticursor(s, st, a)
}

func reduceSetMulticursors(_ *Store, st *State, a Action) (*State, error) {
	st.Multicursors = nil
	for _, p := range a.Args.Paths {
		if indexOfPath(st.Multicursors, p) < 0 {
			st.Multicursors = append(st.Multicursors, p.Clone())
		}
	}
	return st, nil
}

func reduceClearMulticursors(_ *Store, st *State, _ Action) (*State, error) {
	if st.Multicursors == nil {
		return nil, nil
	}
	st.Multicursors = nil
	return st, nil
}

// reduceMulticursorExecuting toggles the batch flag and opens or closes
// the undo group so every mutation of the batch undoes as one step.
func reduceMulticursorExecuting(s *Store, st *State, a Action) (*State, error) {
	if a.Args.Flag == st.MulticursorExecuting {
		return nil, nil
	}
	st.MulticursorExecuting = a.Args.Flag
	if a.Args.Flag {
		st.MulticursorLabel = a.Args.Label
		s.history.BeginGroup(a.Args.Label)
	} else {
		st.MulticursorLabel = ""
		s.history.EndGroup()
	}
	return st, nil
}

func reduceAlert(_ *Store, st *State, a Action) (*State, error) {
	st.Alert = a.Args.Message
	return st, nil
}

func reduceClearAlert(_ *Store, st *State, _ Action) (*State, error) {
	st.Alert = ""
	return st, nil
}

func reduceSetPaletteOpen(_ *Store, st *State, a Action) (*State, error) {
	st.PaletteOpen = a.Args.Flag
	return st, nil
}

func reduceSetCheatsheetOpen(_ *Store, st *State, a Action) (*State, error) {
	st.CheatsheetOpen = a.Args.Flag
	return st, nil
}

func reduceCopy(_ *Store, st *State, a Action) (*State, error) {
	paths := a.Args.Paths
	if len(paths) == 0 && st.Cursor != nil {
		paths = []thought.Path{st.Cursor}
	}
	st.Clipboard = st.Clipboard[:0]
	for _, p := range paths {
		if th, ok := st.Tree.Get(p.Leaf()); ok {
			st.Clipboard = append(st.Clipboard, th.Value)
		}
	}
	return st, nil
}

// restore keeps the document fields of a snapshot and the UI fields of the
// current state.
func restore(cur, snap *State) *State {
	next := cur.clone()
	next.Tree = snap.Tree
	next.Cursor = snap.Cursor.Clone()
	next.Multicursors = nil
	for _, p := range snap.Multicursors {
		next.Multicursors = append(next.Multicursors, p.Clone())
	}
	return next
}

func reduceUndo(s *Store, st *State, _ Action) (*State, error) {
	e, err := s.history.Undo(s.state)
	if err != nil {
		return nil, nil
	}
	return restore(st, e.Snapshot), nil
}

func reduceRedo(s *Store, st *State, _ Action) (*State, error) {
	e, err := s.history.Redo(s.state)
	if err != nil {
		return nil, nil
	}
	return restore(st, e.Snapshot), nil
}

func reduceNewThought(_ *Store, st *State, a Action) (*State, error) {
	parent := thought.Root
	index := -1
	var base thought.Path
	if p, err := target(st, a); err == nil {
		parent = p.ParentID()
		base = p.Parent()
		index = st.Tree.Rank(p.Leaf())
		if !a.Args.Above {
			index++
		}
	}

	st.Tree = st.Tree.Clone()
	id, err := st.Tree.Add(parent, index, a.Args.Value)
	if err != nil {
		return nil, err
	}
	st.Cursor = base.Append(id)
	return st, nil
}

func reduceNewSubthought(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}
	st.Tree = st.Tree.Clone()
	id, err := st.Tree.Add(p.Leaf(), -1, a.Args.Value)
	if err != nil {
		return nil, err
	}
	st.Cursor = p.Append(id)
	return st, nil
}

func reduceEditThought(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}
	st.Tree = st.Tree.Clone()
	if err := st.Tree.SetValue(p.Leaf(), a.Args.Value); err != nil {
		return nil, err
	}
	return st, nil
}

func reduceDeleteThought(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}

	// Focus moves to the previous sibling, then the next, then the parent.
	var next thought.Path
	if id, ok := st.Tree.PrevSibling(p.Leaf()); ok {
		next = p.Parent().Append(id)
	} else if id, ok := st.Tree.NextSibling(p.Leaf()); ok {
		next = p.Parent().Append(id)
	} else {
		next = p.Parent()
	}

	st.Tree = st.Tree.Clone()
	if err := st.Tree.Delete(p.Leaf()); err != nil {
		return nil, err
	}
	if st.Cursor != nil && (st.Cursor.Equal(p) || p.IsAncestorOf(st.Cursor)) {
		st.Cursor = next
	}
	st.Multicursors = pruneMissing(st.Tree, st.Multicursors)
	return st, nil
}

func reduceIndent(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}
	prev, ok := st.Tree.PrevSibling(p.Leaf())
	if !ok {
		return nil, nil
	}
	st.Tree = st.Tree.Clone()
	if err := st.Tree.Move(p.Leaf(), prev, -1); err != nil {
		return nil, err
	}
	st.refocus(p.Leaf())
	return st, nil
}

func reduceOutdent(_ *Store, st *State, a Action) (*State, error) {
	p, err := target(st, a)
	if err != nil {
		return nil, err
	}
	if p.Depth() < 2 {
		return nil, nil
	}
	parent := p.ParentID()
	grand := p.Parent().ParentID()
	index := st.Tree.Rank(parent) + 1

	st.Tree = st.Tree.Clone()
	if err := st.Tree.Move(p.Leaf(), grand, index); err != nil {
		return nil, err
	}
	st.refocus(p.Leaf())
	return st, nil
}

func reduceMoveSibling(delta int) Reducer {
	return func(_ *Store, st *State, a Action) (*State, error) {
		p, err := target(st, a)
		if err != nil {
			return nil, err
		}
		rank := st.Tree.Rank(p.Leaf())
		siblings := st.Tree.Children(p.ParentID())
		dest := rank + delta
		if dest < 0 || dest >= len(siblings) {
			return nil, nil
		}
		st.Tree = st.Tree.Clone()
		if err := st.Tree.Move(p.Leaf(), p.ParentID(), dest); err != nil {
			return nil, err
		}
		st.refocus(p.Leaf())
		return st, nil
	}
}

// refocus re-resolves the cursor after id moved, when the cursor was on id
// or inside its subtree.
func (st *State) refocus(id thought.ID) {
	if st.Cursor == nil {
		return
	}
	for _, c := range st.Cursor {
		if c == id {
			if p, ok := st.Tree.Resolve(st.Cursor.Leaf()); ok {
				st.Cursor = p
			}
			return
		}
	}
}

func pruneMissing(tree *thought.Tree, paths []thought.Path) []thought.Path {
	var out []thought.Path
	for _, p := range paths {
		if tree.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
