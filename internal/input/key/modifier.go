package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier flags.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	// ModAlt is Option on macOS.
	ModAlt
	// ModMeta is Cmd on macOS and Win elsewhere.
	ModMeta
)

// modifierOrder is the display order of modifiers in chord strings.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModMeta, "Meta"},
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
}

// Has reports whether every flag in mod is set.
func (m Modifier) Has(mod Modifier) bool { return m&mod == mod && mod != ModNone }

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool  { return m.Has(ModMeta) }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// hashPrefix renders the modifier part of a chord hash. Ctrl counts as
// Meta, and the order is fixed at META_ALT_SHIFT_.
func (m Modifier) hashPrefix() string {
	var b strings.Builder
	if m.HasMeta() || m.HasCtrl() {
		b.WriteString("META_")
	}
	if m.HasAlt() {
		b.WriteString("ALT_")
	}
	if m.HasShift() {
		b.WriteString("SHIFT_")
	}
	return b.String()
}

// String joins the held modifiers with "+", e.g. "Meta+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierAliases maps lower-case names accepted in chord specs.
var modifierAliases = map[string]Modifier{
	"meta": ModMeta, "cmd": ModMeta, "command": ModMeta, "super": ModMeta, "mod": ModMeta,
	"ctrl": ModCtrl, "control": ModCtrl,
	"alt": ModAlt, "option": ModAlt, "opt": ModAlt,
	"shift": ModShift,
}

// ModifierFromName returns the modifier for a lower-case name, or ModNone.
func ModifierFromName(name string) Modifier {
	return modifierAliases[name]
}
