package journal

import (
	"database/sql"

	"codeberg.org/mutker/questagent/internal/errors"
)

// initSchema initializes the database schema for the delivery journal
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS delivery_log (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp INTEGER NOT NULL,
            endpoint TEXT NOT NULL,
            state TEXT NOT NULL,
            http_status INTEGER,
            elapsed_ms INTEGER,
            payload_preview TEXT,
            response_preview TEXT
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrStorageInit, err)
	}

	return nil
}
