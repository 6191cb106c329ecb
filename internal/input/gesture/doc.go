// Package gesture converts a live pointer drag into a sequence of cardinal
// swipes.
//
// A Recognizer is fed raw pointer positions. The first move that travels
// far enough from the press point establishes an anchor. Every later move
// that travels far enough from the anchor is bucketed into one of four
// directions; a direction different from the previous one is appended to
// the Sequence and reported through Handlers.OnSwipe.
//
// Sequences must start horizontally. A drag whose first swipe is up or
// down is treated as a page scroll: the sequence is discarded and the
// recognizer waits for a fresh start.
//
// The recognizer abandons the drag when the cancel predicate reports true
// or when the view scrolls further than the configured threshold. After
// abandonment moves are ignored until the pointer is released.
package gesture
