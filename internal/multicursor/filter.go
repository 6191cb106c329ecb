package multicursor

import (
	"fmt"

	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/thought"
)

// FilterCursors applies f to cursors, which must be in document order.
// The result is a new slice in document order; cursors is not modified.
// An unknown filter panics.
func FilterCursors(cursors []thought.Path, f command.Filter) []thought.Path {
	switch f {
	case "", command.FilterAll:
		return append([]thought.Path(nil), cursors...)

	case command.FilterFirstSibling:
		return firstPerParent(cursors)

	case command.FilterLastSibling:
		reversed := reversedCopy(cursors)
		return reversedCopy(firstPerParent(reversed))

	case command.FilterPreferAncestor:
		seen := make(map[thought.ID]bool, len(cursors))
		var out []thought.Path
		for _, p := range cursors {
			if !seen[p.ParentID()] {
				out = append(out, p)
			}
			seen[p.Leaf()] = true
		}
		return out

	default:
		panic(fmt.Sprintf("multicursor: unknown filter %q", string(f)))
	}
}

// firstPerParent keeps the first cursor under each parent.
func firstPerParent(cursors []thought.Path) []thought.Path {
	parents := make(map[thought.ID]bool, len(cursors))
	var out []thought.Path
	for _, p := range cursors {
		parent := p.ParentID()
		if parents[parent] {
			continue
		}
		parents[parent] = true
		out = append(out, p)
	}
	return out
}

func reversedCopy(paths []thought.Path) []thought.Path {
	out := make([]thought.Path, len(paths))
	for i, p := range paths {
		out[len(paths)-1-i] = p
	}
	return out
}
