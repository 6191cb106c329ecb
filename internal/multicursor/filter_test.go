package multicursor

import (
	"testing"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/thought"
)

func paths(ps ...string) []thought.Path {
	out := make([]thought.Path, len(ps))
	for i, s := range ps {
		var p thought.Path
		start := 0
		for j := 0; j <= len(s); j++ {
			if j == len(s) || s[j] == '/' {
				p = append(p, thought.ID(s[start:j]))
				start = j + 1
			}
		}
		out[i] = p
	}
	return out
}

func equalPaths(a, b []thought.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestFilterCursors(t *testing.T) {
	siblings := paths("A/A1", "A/A2", "B/B1")
	chain := paths("X", "X/Y", "X/Y/Z", "W")

	tests := []struct {
		name   string
		in     []thought.Path
		filter command.Filter
		want   []thought.Path
	}{
		{"all", siblings, command.FilterAll, siblings},
		{"default is all", siblings, "", siblings},
		{"first sibling", siblings, command.FilterFirstSibling, paths("A/A1", "B/B1")},
		{"last sibling", siblings, command.FilterLastSibling, paths("A/A2", "B/B1")},
		{"prefer ancestor", paths("X", "X/Y"), command.FilterPreferAncestor, paths("X")},
		{"prefer ancestor deep", chain, command.FilterPreferAncestor, paths("X", "W")},
		{"top level siblings", paths("A", "B"), command.FilterFirstSibling, paths("A")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCursors(tt.in, tt.filter)
			if !equalPaths(got, tt.want) {
				t.Errorf("FilterCursors(%v, %s) = %v, want %v", tt.in, tt.filter, got, tt.want)
			}
		})
	}
}

func TestFilterCursorsDoesNotMutateInput(t *testing.T) {
	in := paths("A/A1", "A/A2", "B/B1")
	orig := paths("A/A1", "A/A2", "B/B1")

	for _, f := range []command.Filter{command.FilterAll, command.FilterFirstSibling, command.FilterLastSibling, command.FilterPreferAncestor} {
		out := FilterCursors(in, f)
		if len(out) > 0 {
			out[0] = thought.Path{"clobbered"}
		}
		if !equalPaths(in, orig) {
			t.Fatalf("FilterCursors(%s) mutated its input: %v", f, in)
		}
	}
}

func TestFilterCursorsUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown filter should panic")
		}
	}()
	FilterCursors(paths("A"), command.Filter("sideways"))
}
