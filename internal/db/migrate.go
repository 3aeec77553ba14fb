package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so
// the full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// The CHECK keeps the table to a single saved account.
	`CREATE TABLE IF NOT EXISTS credentials (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		device_json   TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`ALTER TABLE credentials ADD COLUMN session_id TEXT NOT NULL DEFAULT ''`,
}
