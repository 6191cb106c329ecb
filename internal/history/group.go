package history

// GroupScope provides a convenient way to group mutations using defer.
// Usage:
//
//	func indentAll(h *History[*State]) {
//	    defer h.GroupScope("indent").End()
//	    // ... multiple dispatches ...
//	}
type GroupScope[S any] struct {
	history *History[S]
	active  bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (h *History[S]) GroupScope(label string) *GroupScope[S] {
	h.BeginGroup(label)
	return &GroupScope[S]{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope[S]) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel closes the scope without creating an undo step.
func (g *GroupScope[S]) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn fails the group is cancelled.
func (h *History[S]) Transaction(label string, fn func() error) error {
	h.BeginGroup(label)

	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}

	h.EndGroup()
	return nil
}
