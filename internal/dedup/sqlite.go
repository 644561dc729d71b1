package dedup

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a disk-backed index for merges too large to hold the seen
// set in memory. Hashes land in a single-column table with INSERT OR
// IGNORE semantics; the file can be removed after a successful merge.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite-backed index at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dedup index %s: %w", path, err)
	}

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"CREATE TABLE IF NOT EXISTS seen (h TEXT PRIMARY KEY)",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize dedup index: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

// Add inserts a hash, reporting whether it was new.
func (s *SQLite) Add(hash string) (bool, error) {
	res, err := s.db.Exec("INSERT OR IGNORE INTO seen(h) VALUES (?)", hash)
	if err != nil {
		return false, fmt.Errorf("failed to record hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
