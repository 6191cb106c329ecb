package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Chord returns the chord this event triggers.
func (e Event) Chord() Chord {
	return NewChord(e.Key, e.Rune, e.Modifiers)
}

// String returns a readable representation such as "Meta+Alt+A" or "Enter".
func (e Event) String() string {
	return e.Chord().String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}

// Chord is a key plus modifier flags, without timing information.
// Chords are the unit commands bind to.
type Chord struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewChord builds a normalized chord. An upper-case letter implies Shift, so
// "A", "Shift+a" and "Shift+A" all describe the same chord.
func NewChord(k Key, r rune, mods Modifier) Chord {
	if k == KeyRune && r == ' ' {
		k, r = KeySpace, 0
	}
	if k == KeyRune && unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	if k == KeyRune {
		r = unicode.ToLower(r)
	}
	return Chord{Key: k, Rune: r, Modifiers: mods}
}

// Name returns the key part of the chord: the character for rune keys,
// otherwise the special key name.
func (c Chord) Name() string {
	if c.Key == KeyRune {
		return string(c.Rune)
	}
	return c.Key.String()
}

// String returns a readable chord like "Meta+Shift+Z".
func (c Chord) String() string {
	mods := c.Modifiers.String()
	name := c.Name()
	if c.Key == KeyRune {
		name = strings.ToUpper(name)
	}
	if mods == "" {
		return name
	}
	return mods + "+" + name
}
