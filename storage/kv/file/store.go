package filekv

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

// Store is a file-backed core.KeyValueStore: the whole namespace is one JSON
// object on disk, rewritten atomically (tmp file + rename) on every Save.
type Store struct {
	mu     sync.RWMutex
	path   string
	logger core.Logger
	data   map[string]json.RawMessage
}

var _ core.KeyValueStore = (*Store)(nil)

// NewStore opens the store at path, creating parent directories as needed.
// A missing or unreadable file yields an empty store; a corrupt one is
// logged and discarded.
func NewStore(path string, logger core.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}

	s := &Store{
		path:   path,
		logger: logger,
		data:   make(map[string]json.RawMessage),
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "reading data file")
		}
		return s, nil
	}
	if err = json.Unmarshal(raw, &s.data); err != nil {
		logger.Warn("corrupt data file; starting empty", err)
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

func (s *Store) Load(key string, dst interface{}) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return
	}
	if err := core.DecodeValue(raw, dst); err != nil {
		s.logger.Warn("corrupt value for "+key+"; keeping default", err)
	}
}

func (s *Store) Save(key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return errors.Wrap(err, "encoding "+key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = raw
	return s.flush()
}

// flush rewrites the backing file; callers must hold the write lock.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding data file")
	}

	tmp := s.path + ".tmp"
	if err = ioutil.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "writing data file")
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing data file")
	}
	return nil
}
