// Package history provides snapshot-based undo and redo.
//
// The state store records the snapshot it is about to replace before every
// mutating action. Snapshots recorded between BeginGroup and EndGroup
// collapse into a single undo step that restores the state from before the
// group began, so a command applied across many cursors undoes in one step.
//
//	scope := h.GroupScope("indent")
//	defer scope.End()
package history
