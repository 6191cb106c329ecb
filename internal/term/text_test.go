package term

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"日本語", 4, "日…"},
		{"ééé", 2, "é…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestNewThemeTextContrast(t *testing.T) {
	light, _ := colorful.Hex("#f0f0a0")
	dark, _ := colorful.Hex("#202060")

	_, lightBg, _ := NewTheme(light).Accent.Decompose()
	_, darkBg, _ := NewTheme(dark).Accent.Decompose()
	lightFg, _, _ := NewTheme(light).Accent.Decompose()
	darkFg, _, _ := NewTheme(dark).Accent.Decompose()

	if lightBg == darkBg {
		t.Error("accent backgrounds should differ")
	}
	if lightFg != tc(black) {
		t.Errorf("text on light accent = %v, want black", lightFg)
	}
	if darkFg != tc(white) {
		t.Errorf("text on dark accent = %v, want white", darkFg)
	}
}
