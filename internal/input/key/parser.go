package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "ArrowUp", "Space"
//   - With modifiers: "Meta+Enter", "Meta+Shift+Z", "Alt+F4"
//   - Bracketed: "<C-s>", "<M-a>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	// A lone "+" is the plus key, not a separator.
	if spec != "+" && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, ModNone)
}

// ParseChord parses a key specification directly into a Chord.
func ParseChord(spec string) (Chord, error) {
	ev, err := Parse(spec)
	if err != nil {
		return Chord{}, err
	}
	return ev.Chord(), nil
}

// MustParseChord is like ParseChord but panics on error.
// Use it only for built-in bindings known at compile time.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParseChord(%q): %v", spec, err))
	}
	return c
}

// parseBracketed parses notation like "C-s", "M-S-z", "CR".
func parseBracketed(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	parts := strings.Split(inner, "-")

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKey(parts[len(parts)-1], mods)
}

// parseModifierStyle parses "Meta+S" style notation.
func parseModifierStyle(spec string) (Event, error) {
	// "Meta++" binds the plus key.
	keyPart := ""
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		spec = strings.TrimSuffix(spec, "++")
	} else {
		i := strings.LastIndex(spec, "+")
		keyPart = spec[i+1:]
		spec = spec[:i]
	}

	var mods Modifier
	for _, p := range strings.Split(spec, "+") {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(strings.ToLower(p))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if k := KeyFromName(strings.ToLower(keyPart)); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		if runes[0] == ' ' {
			return NewSpecialEvent(KeySpace, mods), nil
		}
		return NewRuneEvent(runes[0], mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}
