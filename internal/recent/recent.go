// Package recent keeps the most-recently-used command list.
//
// The list is persisted as a small JSON document ({"ids":[...]}) in a
// storage.KV so other tools can read it without this package.
package recent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/storage"
)

// StorageKey is the key the list is stored under.
const StorageKey = "recent-commands"

// DefaultMax bounds the list when no maximum is configured.
const DefaultMax = 20

// Option configures a List.
type Option func(*List)

// WithMax sets the list capacity.
func WithMax(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.max = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *logging.Logger) Option {
	return func(l *List) {
		l.logger = logging.OrNop(lg).WithComponent("recent")
	}
}

// List is a bounded MRU list of command ids.
type List struct {
	mu     sync.Mutex
	kv     storage.KV
	max    int
	ids    []string
	logger *logging.Logger
}

// Load creates a list, reading any persisted ids from kv. A corrupt
// document is logged and replaced with an empty list.
func Load(kv storage.KV, opts ...Option) (*List, error) {
	l := &List{kv: kv, max: DefaultMax, logger: logging.Nop()}
	for _, opt := range opts {
		opt(l)
	}

	data, err := kv.Get(StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("recent: load: %w", err)
	}

	if !gjson.ValidBytes(data) {
		l.logger.Warn("discarding corrupt recent list")
		return l, nil
	}
	gjson.GetBytes(data, "ids").ForEach(func(_, v gjson.Result) bool {
		if id := v.String(); id != "" && len(l.ids) < l.max {
			l.ids = append(l.ids, id)
		}
		return true
	})
	return l, nil
}

// Add moves id to the front, trims the list and persists it.
func (l *List) Add(id string) error {
	if id == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.ids)+1)
	ids = append(ids, id)
	for _, existing := range l.ids {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	if len(ids) > l.max {
		ids = ids[:l.max]
	}
	l.ids = ids
	return l.saveLocked()
}

// IDs returns a copy of the list, most recent first.
func (l *List) IDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ids...)
}

// Rank returns the position of id, or -1.
func (l *List) Rank(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.ids {
		if existing == id {
			return i
		}
	}
	return -1
}

// Clear empties the list.
func (l *List) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = nil
	return l.saveLocked()
}

func (l *List) saveLocked() error {
	doc, err := sjson.SetBytes([]byte(`{}`), "ids", l.ids)
	if err != nil {
		return fmt.Errorf("recent: encode: %w", err)
	}
	if l.ids == nil {
		doc, _ = sjson.SetRawBytes(doc, "ids", []byte(`[]`))
	}
	if err := l.kv.Set(StorageKey, doc); err != nil {
		return fmt.Errorf("recent: save: %w", err)
	}
	return nil
}
