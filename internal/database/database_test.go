package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nzvengeance/pokedex/internal/config"
	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Config{DumpPath: filepath.Join(t.TempDir(), "data", "pokedex.db")}
	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_RecordFetch_KeepsOnlyTheLatest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.RecordFetch(ctx, models.LastFetch{
		Identifier: "1", PokemonID: 1, Name: "bulbasaur", RawJSON: `{"id":1}`,
	}))
	fetchedAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.RecordFetch(ctx, models.LastFetch{
		Identifier: "pikachu", PokemonID: 25, Name: "pikachu", RawJSON: `{"id":25}`, FetchedAt: fetchedAt,
	}))

	var count int
	require.NoError(t, db.RawConn().QueryRow("SELECT COUNT(*) FROM last_fetch").Scan(&count))
	assert.Equal(t, 1, count)

	var identifier, raw, at string
	var id int
	require.NoError(t, db.RawConn().QueryRow(
		"SELECT identifier, pokemon_id, raw_json, fetched_at FROM last_fetch",
	).Scan(&identifier, &id, &raw, &at))
	assert.Equal(t, "pikachu", identifier)
	assert.Equal(t, 25, id)
	assert.Equal(t, `{"id":25}`, raw)
	assert.Equal(t, fetchedAt.Format(time.RFC3339Nano), at)
}

func TestNew_ReopensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.db")
	cfg := &config.Config{DumpPath: path}

	db, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, db.RecordFetch(context.Background(), models.LastFetch{Identifier: "1", PokemonID: 1, Name: "bulbasaur", RawJSON: "{}"}))
	require.NoError(t, db.Close())

	db, err = New(cfg)
	require.NoError(t, err, "migrations are idempotent")
	defer db.Close()

	var count int
	require.NoError(t, db.RawConn().QueryRow("SELECT COUNT(*) FROM last_fetch").Scan(&count))
	assert.Equal(t, 1, count)
}
