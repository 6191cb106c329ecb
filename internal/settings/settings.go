// Package settings holds user toggles that persist between sessions.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/mindchord/internal/storage"
)

// StorageKey is the key settings are stored under.
const StorageKey = "settings"

const pathTraining = "hints.training"

// Settings is a JSON document in a storage.KV.
type Settings struct {
	mu  sync.Mutex
	kv  storage.KV
	doc []byte
}

// Load reads settings from kv. defaultTraining applies when the stored
// document does not set training mode.
func Load(kv storage.KV, defaultTraining bool) (*Settings, error) {
	s := &Settings{kv: kv, doc: []byte(`{}`)}
	data, err := kv.Get(StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("settings: load: %w", err)
	case gjson.ValidBytes(data):
		s.doc = data
	}
	if !gjson.GetBytes(s.doc, pathTraining).Exists() {
		doc, err := sjson.SetBytes(s.doc, pathTraining, defaultTraining)
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		s.doc = doc
	}
	return s, nil
}

// Training reports whether training mode is on. In training mode the
// hint label of an executed command lingers after release.
func (s *Settings) Training() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gjson.GetBytes(s.doc, pathTraining).Bool()
}

// SetTraining changes training mode and persists it.
func (s *Settings) SetTraining(on bool) error {
	return s.set(pathTraining, on)
}

// ToggleTraining flips training mode and returns the new value.
func (s *Settings) ToggleTraining() (bool, error) {
	on := !s.Training()
	return on, s.SetTraining(on)
}

// String returns the raw value at a dotted path, or "" if unset.
func (s *Settings) String(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gjson.GetBytes(s.doc, path).String()
}

func (s *Settings) set(path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := sjson.SetBytes(s.doc, path, v)
	if err != nil {
		return fmt.Errorf("settings: set %s: %w", path, err)
	}
	if err := s.kv.Set(StorageKey, doc); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	s.doc = doc
	return nil
}
