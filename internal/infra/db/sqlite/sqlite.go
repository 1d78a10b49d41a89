package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

// Open opens the SQLite database at path, creating its directory when needed,
// and applies the schema.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// every connection to :memory: is its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// connPragmas are applied by the driver to every pooled connection.
var connPragmas = []string{"busy_timeout(5000)", "journal_mode(WAL)"}

func dsn(path string) string {
	q := url.Values{"_pragma": connPragmas}
	return path + "?" + q.Encode()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL,
		quote_number TEXT NOT NULL,
		client_name  TEXT NOT NULL,
		quote_date   TEXT NOT NULL,
		total_cents  INTEGER NOT NULL,
		payload      TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_owner_created ON quotes(owner_id, created_at DESC)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
