// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage persists profile state as string-keyed slots, the way a
// browser profile's local storage does: each slot is overwritten wholesale
// on every write, and the whole store is subject to a byte quota.
//
// Slots live in a SQLite database inside the profile directory. A file lock
// on the profile enforces the single-session assumption; a second process
// opening the same profile fails with ErrProfileLocked instead of racing
// with last-write-wins semantics.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	dbFile   = "slots.db"
	lockFile = "profile.lock"
)

// ErrQuotaExceeded reports a write that would push the store past its byte
// quota. The failed write leaves stored state untouched.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrProfileLocked reports that another process holds the profile lock.
var ErrProfileLocked = errors.New("profile is in use by another process")

// Store is a string-keyed slot store backed by a per-profile SQLite file.
type Store struct {
	db       *sql.DB
	lock     *flock.Flock
	maxBytes int64
}

// Open creates the profile directory if needed, acquires the profile lock,
// and opens the slot database, creating the schema on first use.
func Open(cfg types.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.ProfileDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring profile lock: %w", err)
	}
	if !locked {
		return nil, ErrProfileLocked
	}

	dbPath := filepath.Join(cfg.ProfileDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("opening slot database: %w", err)
	}

	s := &Store{db: db, lock: lock, maxBytes: cfg.MaxBytes}
	if err := s.createSchema(); err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection and the profile lock.
func (s *Store) Close() error {
	err := s.db.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the slot value for key. The second result is false if the
// slot has never been written.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return value, true, nil
}

// Put overwrites the slot for key wholesale. If the store has a byte quota
// and the write would exceed it, Put fails with ErrQuotaExceeded and the
// previous slot value is preserved.
func (s *Store) Put(ctx context.Context, key, value string) error {
	if s.maxBytes > 0 {
		used, err := s.usedBytesExcluding(ctx, key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.maxBytes {
			return ErrQuotaExceeded
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot for key. Deleting an absent slot is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	return nil
}

// Keys returns all slot keys in lexicographic order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning slot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// usedBytesExcluding sums stored value bytes across all slots except key,
// which is about to be overwritten.
func (s *Store) usedBytesExcluding(ctx context.Context, key string) (int64, error) {
	var used sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM slots WHERE key != ?`, key,
	).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("computing quota usage: %w", err)
	}
	return used.Int64, nil
}
