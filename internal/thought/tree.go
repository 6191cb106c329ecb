// Package thought holds the thought tree and the selectors the command
// engine queries: path resolution and document ordering.
package thought

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ID identifies a thought.
type ID string

// Root is the id of the implicit root every top-level thought hangs from.
const Root ID = "__ROOT__"

// Tree errors
var (
	ErrNotFound = errors.New("thought not found")
	ErrRoot     = errors.New("operation not allowed on root")
	ErrCycle    = errors.New("cannot move a thought into its own subtree")
	ErrExists   = errors.New("thought id already exists")
)

// Thought is a single node.
type Thought struct {
	ID       ID
	Value    string
	Parent   ID
	Children []ID
}

// Tree is a mutable thought tree. Use Clone to take a snapshot before
// mutating a tree that is shared.
type Tree struct {
	nodes map[ID]*Thought
	newID func() ID
}

// Option configures a Tree.
type Option func(*Tree)

// WithIDFunc sets the generator used for new thought ids.
func WithIDFunc(fn func() ID) Option {
	return func(t *Tree) {
		t.newID = fn
	}
}

// New creates a tree containing only the root.
func New(opts ...Option) *Tree {
	t := &Tree{
		nodes: map[ID]*Thought{
			Root: {ID: Root},
		},
		newID: func() ID { return ID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	nodes := make(map[ID]*Thought, len(t.nodes))
	for id, n := range t.nodes {
		c := *n
		c.Children = append([]ID(nil), n.Children...)
		nodes[id] = &c
	}
	return &Tree{nodes: nodes, newID: t.newID}
}

// Len returns the number of thoughts, excluding the root.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Get returns a copy of the thought with the given id.
func (t *Tree) Get(id ID) (Thought, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Thought{}, false
	}
	c := *n
	c.Children = append([]ID(nil), n.Children...)
	return c, true
}

// Children returns the ordered children of id.
func (t *Tree) Children(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return append([]ID(nil), n.Children...)
}

// Rank returns the index of id among its siblings, or -1.
func (t *Tree) Rank(id ID) int {
	n, ok := t.nodes[id]
	if !ok || id == Root {
		return -1
	}
	for i, c := range t.nodes[n.Parent].Children {
		if c == id {
			return i
		}
	}
	return -1
}

// Resolve returns the current path of id.
func (t *Tree) Resolve(id ID) (Path, bool) {
	if id == Root {
		return nil, false
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}

	var rev []ID
	for steps := 0; n.ID != Root; steps++ {
		if steps > len(t.nodes) {
			return nil, false
		}
		rev = append(rev, n.ID)
		n, ok = t.nodes[n.Parent]
		if !ok {
			return nil, false
		}
	}

	p := make(Path, len(rev))
	for i, id := range rev {
		p[len(rev)-1-i] = id
	}
	return p, true
}

// Contains reports whether p is still the current path of its leaf.
func (t *Tree) Contains(p Path) bool {
	cur, ok := t.Resolve(p.Leaf())
	return ok && cur.Equal(p)
}

// Add inserts a new thought under parent at index. A negative or
// out-of-range index appends.
func (t *Tree) Add(parent ID, index int, value string) (ID, error) {
	id := t.newID()
	if err := t.Insert(id, parent, index, value); err != nil {
		return "", err
	}
	return id, nil
}

// Insert adds a thought with a caller-chosen id.
func (t *Tree) Insert(id, parent ID, index int, value string) error {
	if _, exists := t.nodes[id]; exists {
		return fmt.Errorf("%w: %s", ErrExists, id)
	}
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("%w: parent %s", ErrNotFound, parent)
	}
	t.nodes[id] = &Thought{ID: id, Value: value, Parent: parent}
	p.Children = insertAt(p.Children, index, id)
	return nil
}

// SetValue changes the text of a thought.
func (t *Tree) SetValue(id ID, value string) error {
	if id == Root {
		return ErrRoot
	}
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n.Value = value
	return nil
}

// Delete removes a thought and its whole subtree.
func (t *Tree) Delete(id ID) error {
	if id == Root {
		return ErrRoot
	}
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	parent := t.nodes[n.Parent]
	parent.Children = removeID(parent.Children, id)

	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[cur].Children...)
		delete(t.nodes, cur)
	}
	return nil
}

// Move reparents id under newParent at index.
func (t *Tree) Move(id, newParent ID, index int) error {
	if id == Root {
		return ErrRoot
	}
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	np, ok := t.nodes[newParent]
	if !ok {
		return fmt.Errorf("%w: parent %s", ErrNotFound, newParent)
	}
	for cur := newParent; cur != Root; cur = t.nodes[cur].Parent {
		if cur == id {
			return ErrCycle
		}
	}

	old := t.nodes[n.Parent]
	old.Children = removeID(old.Children, id)
	np.Children = insertAt(np.Children, index, id)
	n.Parent = newParent
	return nil
}

// Walk visits every thought in document order: depth first, siblings by
// rank. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(p Path, th Thought) bool) {
	var visit func(parent Path, id ID) bool
	visit = func(parent Path, id ID) bool {
		n := t.nodes[id]
		p := parent.Append(id)
		if !fn(p, *n) {
			return false
		}
		for _, c := range n.Children {
			if !visit(p, c) {
				return false
			}
		}
		return true
	}
	for _, c := range t.nodes[Root].Children {
		if !visit(nil, c) {
			return
		}
	}
}

// Visible returns every path in document order.
func (t *Tree) Visible() []Path {
	var out []Path
	t.Walk(func(p Path, _ Thought) bool {
		out = append(out, p)
		return true
	})
	return out
}

// DocumentOrder returns paths sorted depth first by sibling rank. Paths
// whose leaf no longer exists sort last in their original relative order.
// The input slice is not modified.
func (t *Tree) DocumentOrder(paths []Path) []Path {
	index := make(map[ID]int, len(t.nodes))
	i := 0
	t.Walk(func(p Path, _ Thought) bool {
		index[p.Leaf()] = i
		i++
		return true
	})

	out := make([]Path, len(paths))
	copy(out, paths)
	pos := func(p Path) int {
		if n, ok := index[p.Leaf()]; ok {
			return n
		}
		return len(index)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return pos(out[a]) < pos(out[b])
	})
	return out
}

// PrevSibling returns the sibling before id, if any.
func (t *Tree) PrevSibling(id ID) (ID, bool) {
	r := t.Rank(id)
	if r <= 0 {
		return "", false
	}
	return t.nodes[t.nodes[id].Parent].Children[r-1], true
}

// NextSibling returns the sibling after id, if any.
func (t *Tree) NextSibling(id ID) (ID, bool) {
	r := t.Rank(id)
	if r < 0 {
		return "", false
	}
	sibs := t.nodes[t.nodes[id].Parent].Children
	if r+1 >= len(sibs) {
		return "", false
	}
	return sibs[r+1], true
}

func insertAt(ids []ID, index int, id ID) []ID {
	if index < 0 || index >= len(ids) {
		return append(ids, id)
	}
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}

func removeID(ids []ID, id ID) []ID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
