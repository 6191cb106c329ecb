package command

import (
	"sort"

	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/input/key"
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCheatsheet names the command selected whenever a gesture ends with
// its gesture.
func WithCheatsheet(id string) ResolverOption {
	return func(r *Resolver) {
		r.cheatsheetID = id
	}
}

// WithPaletteOpen reports whether the command palette is open. While it
// is, gestures of commands hidden from help do not resolve.
func WithPaletteOpen(fn func() bool) ResolverOption {
	return func(r *Resolver) {
		r.paletteOpen = fn
	}
}

// Resolver maps finished gestures and chords to commands.
type Resolver struct {
	reg          *Registry
	cheatsheetID string
	paletteOpen  func() bool
	chainable    []*Command
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{reg: reg}
	for _, opt := range opts {
		opt(r)
	}
	for _, c := range reg.Commands() {
		if c.Chainable() && c.Gesture() != "" && reg.ByID(c.ID) == c {
			r.chainable = append(r.chainable, c)
		}
	}
	return r
}

// Registry returns the underlying registry.
func (r *Resolver) Registry() *Registry {
	return r.reg
}

// ResolveChord returns the command bound to c, or nil.
func (r *Resolver) ResolveChord(c key.Chord) *Command {
	return r.reg.ByChord(c)
}

// ResolveGesture returns the command for a finished gesture, or nil when
// nothing matches. A chained command is synthesized when seq continues a
// chainable command's gesture with another command's gesture.
func (r *Resolver) ResolveGesture(seq gesture.Sequence) *Command {
	if seq == "" {
		return nil
	}

	if cs := r.reg.ByID(r.cheatsheetID); cs != nil {
		for _, g := range cs.Gestures {
			if g != "" && seq.HasSuffix(g) {
				return cs
			}
		}
	}

	if cmd := r.exact(seq); cmd != nil {
		return cmd
	}

	first := r.chainableInProgress(seq)
	if first == nil {
		return nil
	}
	prefix := first.Gesture()

	suffixes := []gesture.Sequence{
		seq[prefix.Len():],
		seq[prefix.Len()-1:],
	}
	for _, suffix := range suffixes {
		second := r.exact(suffix)
		if second == nil || second.ID == first.ID || !first.IsChainable(second) {
			continue
		}
		chained := ChainCommand(first, second)
		// second may have matched through an alias; keep what was drawn.
		chained.Gestures = []gesture.Sequence{seq}
		return chained
	}
	return nil
}

func (r *Resolver) exact(seq gesture.Sequence) *Command {
	cmd := r.reg.ByGesture(seq)
	if cmd == nil {
		return nil
	}
	if cmd.HideFromHelp && r.paletteOpen != nil && r.paletteOpen() {
		return nil
	}
	return cmd
}

// chainableInProgress returns the chainable command with the longest
// canonical gesture that is a strict prefix of seq.
func (r *Resolver) chainableInProgress(seq gesture.Sequence) *Command {
	var best *Command
	for _, c := range r.chainable {
		g := c.Gesture()
		if g.Len() >= seq.Len() || !seq.HasPrefix(g) {
			continue
		}
		if best == nil || g.Len() > best.Gesture().Len() {
			best = c
		}
	}
	return best
}

// Candidates returns the commands that seq could still complete to,
// ordered by gesture then label. Commands hidden from help are skipped.
func (r *Resolver) Candidates(seq gesture.Sequence) []*Command {
	type candidate struct {
		cmd *Command
		g   gesture.Sequence
	}
	var out []candidate
	for _, c := range r.reg.Commands() {
		if c.HideFromHelp || r.reg.ByID(c.ID) != c {
			continue
		}
		for _, g := range c.Gestures {
			if g.HasPrefix(seq) {
				out = append(out, candidate{cmd: c, g: g})
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].g != out[j].g {
			return out[i].g < out[j].g
		}
		return out[i].cmd.Label < out[j].cmd.Label
	})

	cmds := make([]*Command, len(out))
	for i, c := range out {
		cmds[i] = c.cmd
	}
	return cmds
}

// Possible reports whether any command's gesture starts with seq, or a
// chainable command could still produce a chain from it.
func (r *Resolver) Possible(seq gesture.Sequence) bool {
	if len(r.Candidates(seq)) > 0 {
		return true
	}
	first := r.chainableInProgress(seq)
	if first == nil {
		return false
	}
	prefix := first.Gesture()
	for _, suffix := range []gesture.Sequence{seq[prefix.Len():], seq[prefix.Len()-1:]} {
		for _, c := range r.Candidates(suffix) {
			if c.ID != first.ID && first.IsChainable(c) {
				return true
			}
		}
	}
	return false
}
