package pgkv

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/studysync/core"
	appfs "github.com/trezcool/studysync/fs"
)

// Store is a Postgres-backed core.KeyValueStore; each key maps to one row of
// the portal_state table holding the JSON-encoded collection.
type Store struct {
	db     *sqlx.DB
	logger core.Logger
}

var _ core.KeyValueStore = (*Store)(nil)

func NewStore(db *sqlx.DB, logger core.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Load(key string, dst interface{}) {
	var raw []byte
	if err := s.db.Get(&raw, "SELECT value FROM portal_state WHERE key = $1", key); err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("loading "+key+" failed; keeping default", err)
		}
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
	_, err = s.db.Exec(
		`INSERT INTO portal_state (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`,
		key, raw,
	)
	return errors.Wrap(err, "saving "+key)
}

// Open connects to the database at conf.DatabaseURL and waits for it to be
// ready. Waits 100ms longer between each attempt.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB ping timeout")
	}
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	if err := goose.RunFS("up", db.DB, appfs.FS, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
