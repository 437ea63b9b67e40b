package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS calculation_cache (
	cache_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	stored_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
)`

type cacheRow struct {
	Payload   string `db:"payload"`
	StoredAt  int64  `db:"stored_at"`
	ExpiresAt int64  `db:"expires_at"`
}

// SQLiteStore keeps cached calculations in a SQLite database so they survive restarts.
// Entries are stored as JSON; expires_at is a unix nanosecond timestamp, 0 for never.
type SQLiteStore struct {
	db    *sqlx.DB
	clock Clock
}

// NewSQLiteStore opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string, clock Clock) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	return &SQLiteStore{db: db, clock: clock}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var row cacheRow
	err := s.db.GetContext(ctx, &row,
		`SELECT payload, stored_at, expires_at FROM calculation_cache WHERE cache_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	now := s.clock.now().UnixNano()
	if row.ExpiresAt != 0 && now >= row.ExpiresAt {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM calculation_cache WHERE cache_key = ? AND expires_at = ?`, key, row.ExpiresAt); err != nil {
			return Entry{}, false, fmt.Errorf("failed to drop expired cache entry: %w", err)
		}
		return Entry{}, false, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(row.Payload), &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	entry.Calculation = entry.Calculation.Canonical()
	entry.StoredAt = time.Unix(0, row.StoredAt).UTC()
	return entry, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value Entry, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.clock.now().Add(ttl).UnixNano()
	}
	const q = `
		INSERT INTO calculation_cache (cache_key, payload, stored_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			payload = excluded.payload,
			stored_at = excluded.stored_at,
			expires_at = excluded.expires_at
	`
	if _, err := s.db.ExecContext(ctx, q, key, string(payload), value.StoredAt.UnixNano(), expiresAt); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM calculation_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Len counts entries that have not expired
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM calculation_cache WHERE expires_at = 0 OR expires_at > ?`, s.clock.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
