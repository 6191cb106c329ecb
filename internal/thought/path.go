package thought

import "strings"

// Path is the ordered list of thought ids from the top level down to a
// focused thought. The root is implicit and never part of a path.
// A Path is a value: recompute it after any mutation that could move an
// ancestor.
type Path []ID

// Leaf returns the last id, or the zero ID for an empty path.
func (p Path) Leaf() ID {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// ParentID returns the immediate parent of the leaf. Top-level thoughts
// report Root.
func (p Path) ParentID() ID {
	if len(p) <= 1 {
		return Root
	}
	return p[len(p)-2]
}

// Parent returns the path without its leaf.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Depth returns the number of ids in the path.
func (p Path) Depth() int {
	return len(p)
}

// IsEmpty reports whether the path has no ids.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Equal reports whether p and q name the same ids in order.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether p is a strict prefix of q.
func (p Path) IsAncestorOf(q Path) bool {
	if len(p) >= len(q) {
		return false
	}
	return p.Equal(q[:len(p)])
}

// Clone returns a copy that shares no storage with p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Append returns a new path with id added as the leaf.
func (p Path) Append(id ID) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, id)
}

// Key returns a string usable as a map key.
func (p Path) Key() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, "/")
}

// String returns the path as slash-separated ids.
func (p Path) String() string {
	return "/" + p.Key()
}

// ParsePath is the inverse of String. Empty segments are dropped, so "" and
// "/" yield an empty path.
func ParsePath(s string) Path {
	var p Path
	for _, part := range strings.Split(s, "/") {
		if part != "" {
			p = append(p, ID(part))
		}
	}
	return p
}
