package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path to the bot's database
func DBPath() string {
	return filepath.Join("data", "divebot.db")
}

// Open opens the database at dbPath, creating its directory and the guide
// tables if needed.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows one writer; serialize through a single connection
	db.SetMaxOpenConns(1)

	if err := ensureGuideSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureGuideSchema ensures the guide request tables exist at dbPath.
func EnsureGuideSchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database to ensure schema: %w", err)
	}
	defer db.Close()

	return ensureGuideSchema(db)
}

func ensureGuideSchema(db *sql.DB) error {
	_, err := db.Exec(`
		PRAGMA foreign_keys = ON;
		CREATE TABLE IF NOT EXISTS guide_requests (
			id TEXT PRIMARY KEY,
			requester TEXT NOT NULL,
			location TEXT NOT NULL,
			dive_date TEXT NOT NULL DEFAULT '',
			dive_time TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS guide_volunteers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL REFERENCES guide_requests(id) ON DELETE CASCADE,
			guide TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_guide_volunteers_request_guide ON guide_volunteers(request_id, guide);
	`)
	if err != nil {
		return fmt.Errorf("creating guide tables: %w", err)
	}

	return nil
}
