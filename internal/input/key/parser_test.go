package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"a", KeyRune, 'a', ModNone},
		{"@", KeyRune, '@', ModNone},
		{"Enter", KeyEnter, 0, ModNone},
		{"escape", KeyEscape, 0, ModNone},
		{"ArrowUp", KeyUp, 0, ModNone},
		{"Meta+Enter", KeyEnter, 0, ModMeta},
		{"Shift+Enter", KeyEnter, 0, ModShift},
		{"Meta+Shift+Z", KeyRune, 'Z', ModMeta | ModShift},
		{"Cmd+Alt+t", KeyRune, 't', ModMeta | ModAlt},
		{"Ctrl++", KeyRune, '+', ModCtrl},
		{"+", KeyRune, '+', ModNone},
		{"<C-s>", KeyRune, 's', ModCtrl},
		{"<M-S-z>", KeyRune, 'z', ModMeta | ModShift},
		{"<CR>", KeyEnter, 0, ModNone},
		{"<Esc>", KeyEscape, 0, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if ev.Key != tt.wantKey {
				t.Errorf("key = %v, want %v", ev.Key, tt.wantKey)
			}
			if ev.Rune != tt.wantRune {
				t.Errorf("rune = %q, want %q", ev.Rune, tt.wantRune)
			}
			if ev.Modifiers != tt.wantMod {
				t.Errorf("modifiers = %v, want %v", ev.Modifiers, tt.wantMod)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"Meta+", ErrInvalidSpec},
		{"Bogus", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestChordHash(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Meta+Alt+A", "META_ALT_A"},
		{"Meta+A", "META_A"},
		{"Ctrl+a", "META_A"},
		{"Enter", "ENTER"},
		{"Shift+Enter", "SHIFT_ENTER"},
		{"Meta+Enter", "META_ENTER"},
		{"Meta+Shift+z", "META_SHIFT_Z"},
		{"Meta+Z", "META_SHIFT_Z"},
		{"Meta+Shift+ArrowUp", "META_SHIFT_ARROWUP"},
		{"Alt+Shift+Meta+x", "META_ALT_SHIFT_X"},
		{"Escape", "ESCAPE"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c := MustParseChord(tt.spec)
			if got := c.Hash(); got != tt.want {
				t.Errorf("Hash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChordHashMatchesEvent(t *testing.T) {
	bound := MustParseChord("Meta+Shift+Z")
	pressed := NewRuneEvent('Z', ModMeta).Chord()
	if bound.Hash() != pressed.Hash() {
		t.Errorf("bound %q != pressed %q", bound.Hash(), pressed.Hash())
	}
}

func TestChordHasCommandModifier(t *testing.T) {
	if MustParseChord("Shift+a").HasCommandModifier() {
		t.Error("Shift alone is not a command modifier")
	}
	if !MustParseChord("Alt+a").HasCommandModifier() {
		t.Error("Alt is a command modifier")
	}
	if !(Chord{}).IsZero() {
		t.Error("zero chord should report IsZero")
	}
}

func TestMustParseChordPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseChord should panic on invalid input")
		}
	}()
	MustParseChord("Hyper+x")
}
