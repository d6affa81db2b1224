package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS covered_topics (
	seq   INTEGER PRIMARY KEY,
	topic TEXT NOT NULL
);`

// SQLiteStore keeps the ledger in a single table ordered by seq.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path. Opening creates the
// schema, which persists an empty ledger for a fresh file.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() (*Ledger, error) {
	rows, err := s.db.Query(`SELECT topic FROM covered_topics ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	l := &Ledger{Covered: []string{}}
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		l.Covered = append(l.Covered, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return l, nil
}

// Save rewrites the table inside one transaction.
func (s *SQLiteStore) Save(l *Ledger) error {
	if l == nil {
		return errors.New("nil ledger")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM covered_topics`); err != nil {
		return fmt.Errorf("clearing ledger: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO covered_topics (seq, topic) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing ledger insert: %w", err)
	}
	defer stmt.Close()

	for i, topic := range l.Covered {
		if _, err := stmt.Exec(i+1, topic); err != nil {
			return fmt.Errorf("inserting topic %q: %w", topic, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}
	return nil
}
