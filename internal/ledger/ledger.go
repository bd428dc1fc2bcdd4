// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records completed conversions in a local SQLite
// database so batch and watch runs can skip notebooks whose content has
// not changed. The conversion pipeline itself never touches the ledger;
// it belongs to the CLI layer.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
    notebook     TEXT PRIMARY KEY,
    digest       TEXT NOT NULL,
    script       TEXT NOT NULL,
    entry_name   TEXT NOT NULL,
    converted_at TEXT NOT NULL
);
`

// Entry is one recorded conversion.
type Entry struct {
	Notebook    string
	Digest      string
	Script      string
	EntryName   string
	ConvertedAt time.Time
}

// Ledger manages the conversion record database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating the parent
// directory and schema as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record upserts the entry for its notebook path.
func (l *Ledger) Record(e Entry) error {
	_, err := l.db.Exec(`
		INSERT INTO conversions (notebook, digest, script, entry_name, converted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(notebook) DO UPDATE SET
			digest = excluded.digest,
			script = excluded.script,
			entry_name = excluded.entry_name,
			converted_at = excluded.converted_at`,
		e.Notebook, e.Digest, e.Script, e.EntryName, e.ConvertedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Lookup returns the entry for a notebook path, or nil when none exists.
func (l *Ledger) Lookup(notebook string) (*Entry, error) {
	row := l.db.QueryRow(`
		SELECT notebook, digest, script, entry_name, converted_at
		FROM conversions WHERE notebook = ?`, notebook)
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up conversion: %w", err)
	}
	return &e, nil
}

// List returns all recorded conversions ordered by notebook path.
func (l *Ledger) List() ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT notebook, digest, script, entry_name, converted_at
		FROM conversions ORDER BY notebook`)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(scan func(...any) error) (Entry, error) {
	var e Entry
	var ts string
	if err := scan(&e.Notebook, &e.Digest, &e.Script, &e.EntryName, &ts); err != nil {
		return Entry{}, err
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		e.ConvertedAt = t
	}
	return e, nil
}
