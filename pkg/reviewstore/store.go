// Package reviewstore persists scraped review text and the inverted-index
// postings built over it. The fact files stay the authoritative pipeline
// output; this store only backs the nlp indexing commands.
package reviewstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the sqlite database holding reviews and postings.
type Store struct {
	*sql.DB
	path string
}

func openDB(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the store at path, initializing the schema when it
// is missing.
func Open(path string) (*Store, error) {
	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	store := &Store{DB: sqlDB, path: path}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InitSchema creates the tables and indexes if they do not exist.
func (s *Store) InitSchema() error {
	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
