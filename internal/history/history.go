package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 500

// Entry is one undoable step.
type Entry[S any] struct {
	// ID identifies the step; grouped mutations share the group's id.
	ID string
	// Label describes the step, e.g. the command id.
	Label string
	// Snapshot is the state to restore.
	Snapshot  S
	Timestamp time.Time
}

// History manages undo/redo snapshots of type S.
type History[S any] struct {
	mu sync.Mutex

	undoStack []Entry[S]
	redoStack []Entry[S]

	// Grouping state
	grouping bool
	groupID  string
	group    string
	pending  *Entry[S]

	maxEntries int
}

// New creates a history keeping at most maxEntries undo steps.
func New[S any](maxEntries int) *History[S] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History[S]{maxEntries: maxEntries}
}

// Record saves the state that a mutation is about to replace. Inside a
// group only the first snapshot is kept. Recording clears the redo stack.
func (h *History[S]) Record(label string, before S) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.pending == nil {
			h.pending = &Entry[S]{
				ID:        h.groupID,
				Label:     h.group,
				Snapshot:  before,
				Timestamp: time.Now(),
			}
		}
		return
	}

	h.pushLocked(Entry[S]{
		ID:        uuid.NewString(),
		Label:     label,
		Snapshot:  before,
		Timestamp: time.Now(),
	})
}

func (h *History[S]) pushLocked(e Entry[S]) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the latest step. current is saved for redo and the snapshot
// to restore is returned.
func (h *History[S]) Undo(current S) (Entry[S], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry[S]{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.redoStack = append(h.redoStack, Entry[S]{
		ID:        e.ID,
		Label:     e.Label,
		Snapshot:  current,
		Timestamp: time.Now(),
	})
	return e, nil
}

// Redo reapplies the latest undone step.
func (h *History[S]) Redo(current S) (Entry[S], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Entry[S]{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.undoStack = append(h.undoStack, Entry[S]{
		ID:        e.ID,
		Label:     e.Label,
		Snapshot:  current,
		Timestamp: time.Now(),
	})
	return e, nil
}

// CanUndo returns true if undo is available.
func (h *History[S]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History[S]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History[S]) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History[S]) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// UndoLabel returns the label of the step Undo would revert.
func (h *History[S]) UndoLabel() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// Clear drops all history.
func (h *History[S]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.pending = nil
}

// BeginGroup starts a group. Nested calls are ignored.
func (h *History[S]) BeginGroup(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupID = uuid.NewString()
	h.group = label
	h.pending = nil
}

// EndGroup closes the group, pushing one step if anything was recorded.
func (h *History[S]) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	if h.pending != nil {
		h.pushLocked(*h.pending)
	}
	h.grouping = false
	h.pending = nil
}

// CancelGroup closes the group without pushing a step.
// Mutations already applied stay applied.
func (h *History[S]) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.pending = nil
}

// Grouping reports whether a group is open.
func (h *History[S]) Grouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}
