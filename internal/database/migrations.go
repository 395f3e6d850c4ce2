package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

func (db *DB) migrate() error {
	log.Debug().Msg("running database migrations")

	migrations := []string{
		db.migrationLastFetch(),
	}

	for i, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}

// last_fetch holds at most one row; slot is pinned to 1.
func (db *DB) migrationLastFetch() string {
	return `CREATE TABLE IF NOT EXISTS last_fetch (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		identifier TEXT NOT NULL,
		pokemon_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		raw_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`
}
