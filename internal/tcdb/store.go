// Package tcdb provides the sqlite-backed harmonics store: a fixed-schema
// record table, a sparse constituent table, and the seeded vocabulary
// enumerations. It implements both harmonics.Store and harmonics.Vocabulary.
package tcdb

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

//go:embed schema.sql
var schemaSQL string

// Store is one physical harmonics database.
// Uses SQLite with WAL mode for concurrent read access; the single logical
// writer assumption lives with the caller.
type Store struct {
	path  string
	db    *sql.DB
	vocab *vocab
}

// Open creates or opens a harmonics store at the given path, applying
// pragmas and the embedded schema idempotently. The vocabulary tables are
// loaded into memory once; they are closed enumerations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	v, err := loadVocab(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	return &Store{path: path, db: db, vocab: v}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path implements harmonics.Store.
func (s *Store) Path() string {
	return s.path
}

// Header implements harmonics.Store.
func (s *Store) Header() (harmonics.Header, error) {
	var hdr harmonics.Header
	rows, err := s.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return hdr, fmt.Errorf("read header: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return hdr, fmt.Errorf("read header: %w", err)
		}
		switch key {
		case "major_rev":
			hdr.MajorRev = value
		case "minor_rev":
			hdr.MinorRev = value
		case "start_year":
			hdr.StartYear = value
		case "number_of_years":
			hdr.NumberOfYears = value
		}
	}
	if err := rows.Err(); err != nil {
		return hdr, fmt.Errorf("read header: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&hdr.NumberOfRecords); err != nil {
		return hdr, fmt.Errorf("read header: %w", err)
	}
	return hdr, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
