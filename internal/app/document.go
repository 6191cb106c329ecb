package app

import (
	"errors"
	"strings"

	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/storage"
	"github.com/dshills/mindchord/internal/store"
	"github.com/dshills/mindchord/internal/thought"
)

// DocumentKey is the storage key of the outline.
const DocumentKey = "document"

// welcome is the outline a fresh install starts with.
const welcome = `- Welcome to mindchord
  - Drag with the mouse to draw a gesture
  - Hold still mid-gesture to see every completion
  - Press F1 for the cheatsheet
- Try it
  - →↓ adds a thought
  - ←↓→ selects every sibling
  - ←→↓← undoes
`

// loadDocument reads the saved outline, or the welcome outline when none
// has been saved.
func loadDocument(kv storage.KV, logger *logging.Logger) (*thought.Tree, error) {
	data, err := kv.Get(DocumentKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return thought.ParseOutline(strings.NewReader(welcome))
	case err != nil:
		return nil, err
	}
	tree, err := thought.ParseOutline(strings.NewReader(string(data)))
	if err != nil {
		logger.Error("saved document is unreadable, starting over: %v", err)
		return thought.ParseOutline(strings.NewReader(welcome))
	}
	return tree, nil
}

// document saves the outline whenever the tree changes.
type document struct {
	kv     storage.KV
	saved  *thought.Tree
	logger *logging.Logger
}

func newDocument(kv storage.KV, tree *thought.Tree, logger *logging.Logger) *document {
	return &document{kv: kv, saved: tree, logger: logger.WithComponent("document")}
}

// onState is a store subscriber. Reducers clone the tree before changing
// it, so pointer inequality means a new revision.
func (d *document) onState(st *store.State) {
	if st.Tree == d.saved {
		return
	}
	if err := d.kv.Set(DocumentKey, []byte(st.Tree.Outline())); err != nil {
		d.logger.Error("saving document: %v", err)
		return
	}
	d.saved = st.Tree
}
