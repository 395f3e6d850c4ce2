package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nzvengeance/pokedex/internal/config"
	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/rs/zerolog/log"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the SQLite flavour of the last-fetch dump. It keeps a single row that
// every successful fetch overwrites.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (creating if needed) the SQLite dump at cfg.DumpPath
func New(cfg *config.Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.DumpPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}
	conn, err := sql.Open("sqlite3", cfg.DumpPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1) // SQLite is single-writer

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn, path: cfg.DumpPath}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info().Str("path", cfg.DumpPath).Msg("last fetch database ready")
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// RawConn returns the underlying sql.DB connection
func (db *DB) RawConn() *sql.DB {
	return db.conn
}

// --- Last Fetch ---

// RecordFetch overwrites the stored last fetch.
func (db *DB) RecordFetch(ctx context.Context, fetch models.LastFetch) error {
	fetchedAt := fetch.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO last_fetch (slot, identifier, pokemon_id, name, raw_json, fetched_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			identifier=excluded.identifier, pokemon_id=excluded.pokemon_id,
			name=excluded.name, raw_json=excluded.raw_json, fetched_at=excluded.fetched_at`,
		fetch.Identifier, fetch.PokemonID, fetch.Name, fetch.RawJSON, fetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting last fetch: %w", err)
	}

	log.Debug().Int("id", fetch.PokemonID).Msg("stored last fetch")
	return nil
}
