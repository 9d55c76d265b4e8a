package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// OpenSQLite opens (creating if needed) the local SQLite database backing
// one or more SQLiteMedium buckets.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: create %s: %v", ErrStorage, dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", ErrStorage, path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create state table: %v", ErrStorage, err)
	}

	return db, nil
}

// SQLiteMedium snapshots a collection into one bucket of the shared state
// table as a JSON blob, replaced wholesale on every save.
type SQLiteMedium[T any] struct {
	db     *sql.DB
	bucket string
}

// NewSQLiteMedium creates a medium over the named bucket of db.
func NewSQLiteMedium[T any](db *sql.DB, bucket string) *SQLiteMedium[T] {
	return &SQLiteMedium[T]{db: db, bucket: bucket}
}

// Load reads the bucket's snapshot. An absent bucket is an empty store.
func (m *SQLiteMedium[T]) Load(ctx context.Context) ([]T, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, m.bucket).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%w: select bucket %s: %v", ErrStorage, m.bucket, err)
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: decode bucket %s: %v", ErrStorage, m.bucket, err)
	}
	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Save replaces the bucket's snapshot in a single transaction.
func (m *SQLiteMedium[T]) Save(ctx context.Context, records []T) (retErr error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode bucket %s: %v", ErrStorage, m.bucket, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO state(bucket, payload) VALUES(?, ?)
		 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		m.bucket, payload,
	); err != nil {
		retErr = fmt.Errorf("%w: upsert bucket %s: %v", ErrStorage, m.bucket, err)
		return retErr
	}

	if err := tx.Commit(); err != nil {
		retErr = fmt.Errorf("%w: commit: %v", ErrStorage, err)
		return retErr
	}

	return nil
}
