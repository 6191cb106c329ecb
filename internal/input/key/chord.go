package key

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Hash returns the canonical index key for the chord.
//
// The hash is the modifier prefixes in the fixed order META_, ALT_, SHIFT_
// followed by the upper-cased key name, e.g. "META_ALT_A" or "SHIFT_ENTER".
// Ctrl folds into META so a binding written for one platform's command key
// matches the other.
func (c Chord) Hash() string {
	return c.Modifiers.hashPrefix() + upper.String(c.Name())
}

// IsZero reports whether the chord is unset.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Modifiers == ModNone
}

// HasCommandModifier reports whether the chord uses Meta, Ctrl or Alt.
// Plain and Shift-only chords are text entry while editing.
func (c Chord) HasCommandModifier() bool {
	return c.Modifiers.HasMeta() || c.Modifiers.HasCtrl() || c.Modifiers.HasAlt()
}
