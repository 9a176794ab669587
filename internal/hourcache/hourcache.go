// Package hourcache persists extracted EXIF capture hours so unchanged
// photos are never re-decoded across runs.
package hourcache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrUnavailable marks a store that could not be opened or queried. Callers
// degrade to direct EXIF extraction instead of failing the run.
var ErrUnavailable = errors.New("hour cache unavailable")

// Entry is one cached photo: its last seen mtime and extracted hour.
// Hour is nil when the photo carries no usable capture-time tag.
type Entry struct {
	MTime int64
	Hour  *int
}

// Update is one row destined for Upsert.
type Update struct {
	Path  string
	MTime int64
	Hour  *int
}

// Schema for the hour cache database.
const schema = `
CREATE TABLE IF NOT EXISTS photos (
    path TEXT PRIMARY KEY,
    mtime INTEGER NOT NULL,
    hour INTEGER
);
`

// Store is a sqlite-backed hour cache. Single writer: all mutation happens
// from one goroutine after the parallel extraction phase.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path. Any open or schema
// failure is reported wrapped in ErrUnavailable.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create cache directory: %v", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: initialize schema: %v", ErrUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadAll reads every cached entry into memory.
func (s *Store) LoadAll() (map[string]Entry, error) {
	rows, err := s.db.Query(`SELECT path, mtime, hour FROM photos`)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	entries := make(map[string]Entry)
	for rows.Next() {
		var (
			path  string
			mtime int64
			hour  sql.NullInt64
		)
		if err := rows.Scan(&path, &mtime, &hour); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrUnavailable, err)
		}
		e := Entry{MTime: mtime}
		if hour.Valid {
			h := int(hour.Int64)
			e.Hour = &h
		}
		entries[path] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %v", ErrUnavailable, err)
	}
	return entries, nil
}

// Upsert inserts or replaces a batch of entries in a single transaction.
// Either the whole batch lands or none of it does.
func (s *Store) Upsert(updates []Update) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO photos (path, mtime, hour) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		var hour any
		if u.Hour != nil {
			hour = *u.Hour
		}
		if _, err := stmt.Exec(u.Path, u.MTime, hour); err != nil {
			return fmt.Errorf("upsert %s: %w", u.Path, err)
		}
	}

	return tx.Commit()
}

// Prune deletes every entry whose path is not in currentPaths, as one
// transaction. Afterwards the cache domain is a subset of the current scan.
func (s *Store) Prune(currentPaths map[string]bool) error {
	cached, err := s.LoadAll()
	if err != nil {
		return err
	}

	var stale []string
	for path := range cached {
		if !currentPaths[path] {
			stale = append(stale, path)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin prune: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM photos WHERE path = ?`)
	if err != nil {
		return fmt.Errorf("prepare prune: %w", err)
	}
	defer stmt.Close()

	for _, path := range stale {
		if _, err := stmt.Exec(path); err != nil {
			return fmt.Errorf("prune %s: %w", path, err)
		}
	}

	return tx.Commit()
}

// Clear drops every cached entry.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM photos`)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Stats summarizes the cache for `wallshift cache status`.
type Stats struct {
	Entries     int
	WithHour    int
	WithoutHour int
}

// Stat counts cached entries.
func (s *Store) Stat() (Stats, error) {
	var st Stats
	row := s.db.QueryRow(`SELECT COUNT(*), COUNT(hour) FROM photos`)
	if err := row.Scan(&st.Entries, &st.WithHour); err != nil {
		return st, fmt.Errorf("%w: stat: %v", ErrUnavailable, err)
	}
	st.WithoutHour = st.Entries - st.WithHour
	return st, nil
}
