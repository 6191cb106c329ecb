// Package term adapts a tcell screen to the engine: it turns key events
// into chords, mouse drags into gesture points, and draws the outline,
// hints, palette and cheatsheet.
package term
