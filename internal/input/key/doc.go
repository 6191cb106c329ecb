// Package key provides key event types, chord hashing and parsing for the
// input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//   - Chord: A key plus modifiers, the unit commands bind to
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Meta+Enter", "Alt+F4", "Meta+Shift+Z"
//   - Bracketed: "<C-s>", "<M-a>", "<CR>", "<Esc>"
//
// # Chord Hashes
//
// Chord.Hash produces the index key used by the command registry. Two
// events that should trigger the same command always hash identically:
// Ctrl and Meta fold together, and an upper-case letter implies Shift.
package key
