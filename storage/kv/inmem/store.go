package inmemkv

import (
	"encoding/json"
	"sync"

	"github.com/trezcool/studysync/core"
)

// Store is an in-memory core.KeyValueStore; data lives for the lifetime of
// the process. Used in tests and as a fallback when no data dir is writable.
type Store struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

var _ core.KeyValueStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{data: make(map[string]json.RawMessage)}
}

func (s *Store) Load(key string, dst interface{}) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return
	}
	_ = core.DecodeValue(raw, dst) // corrupt value: keep caller's default
}

func (s *Store) Save(key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Keys returns the stored keys; handy in tests.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
