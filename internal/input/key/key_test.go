package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyUp, "ArrowUp"},
		{KeyDown, "ArrowDown"},
		{KeyLeft, "ArrowLeft"},
		{KeyRight, "ArrowRight"},
		{KeyF12, "F12"},
		{KeySpace, "Space"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyClassification(t *testing.T) {
	tests := []struct {
		key      Key
		special  bool
		function bool
		arrow    bool
	}{
		{KeyNone, false, false, false},
		{KeyRune, false, false, false},
		{KeyEnter, true, false, false},
		{KeyF5, true, true, false},
		{KeyLeft, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsSpecial(); got != tt.special {
				t.Errorf("IsSpecial() = %v, want %v", got, tt.special)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsArrowKey(); got != tt.arrow {
				t.Errorf("IsArrowKey() = %v, want %v", got, tt.arrow)
			}
		})
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"esc", KeyEscape},
		{"return", KeyEnter},
		{"arrowup", KeyUp},
		{"up", KeyUp},
		{"pgdn", KeyPageDown},
		{"f10", KeyF10},
		{"nope", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
