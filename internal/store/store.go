package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite"
)

// Table names, as annotated on the ent schemas.
const (
	kvTable       = "kv"
	llmEventTable = "llm_request_events"
)

// pragmas tune SQLite for one local user. busy_timeout covers the CLI
// and the TUI touching the file at the same time; ent's migrator refuses
// to run with foreign_keys off.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open connects to the SQLite database at dsn, tunes it and migrates the
// ent schemas in ent/schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	drv := entsql.OpenDB(dialect.SQLite, db)

	ctx := context.Background()
	for _, p := range pragmas {
		if err := drv.Exec(ctx, p, []any{}, nil); err != nil {
			drv.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := migrate(ctx, drv); err != nil {
		drv.Close()
		return nil, err
	}
	return &Store{db: db, drv: drv}, nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

// Bucket returns the key/value bucket backed by this store.
func (s *Store) Bucket() Bucket {
	return &kvBucket{drv: s.drv}
}

// EventRepo returns the LLM request log backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv}
}

// Reset deletes every stored record: accounts, results, session and the
// LLM request log.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{kvTable, llmEventTable} {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		if err := s.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// DefaultDBPath is MINDSPARK_DB when set, else mindspark.db under the XDG
// data directory. The parent directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MINDSPARK_DB"); p != "" {
		return p, EnsureDir(p)
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate data directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "mindspark", "mindspark.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
