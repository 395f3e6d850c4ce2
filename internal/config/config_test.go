package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"POKEDEX_API_BASE_URL", "POKEDEX_SPRITE_BASE_URL", "POKEDEX_ASSET_ROOT",
		"POKEDEX_START_ID", "POKEDEX_DUMP_DRIVER", "POKEDEX_DUMP_PATH",
		"POKEDEX_RATE_LIMIT", "POKEDEX_RATE_BURST", "POKEDEX_FULLSCREEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.APIBaseURL)
	assert.Equal(t, "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites", cfg.SpriteBaseURL)
	assert.Equal(t, "assets", cfg.AssetRoot)
	assert.Equal(t, 1, cfg.StartID)
	assert.Equal(t, DumpDriverFile, cfg.DumpDriver)
	assert.Equal(t, "./data/Pokedex.json", cfg.DumpPath)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, float32(810), cfg.WindowWidth)
	assert.Equal(t, float32(600), cfg.WindowHeight)
	assert.False(t, cfg.Fullscreen)
}

func TestLoad_Overrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("POKEDEX_API_BASE_URL", "http://localhost:9000/api/v2/")
	t.Setenv("POKEDEX_ASSET_ROOT", root)
	t.Setenv("POKEDEX_START_ID", "25")
	t.Setenv("POKEDEX_DUMP_DRIVER", "SQLite")
	t.Setenv("POKEDEX_DUMP_PATH", "")
	t.Setenv("POKEDEX_RATE_LIMIT", "0.5")
	t.Setenv("POKEDEX_FULLSCREEN", "TRUE")

	cfg := Load()
	assert.Equal(t, "http://localhost:9000/api/v2", cfg.APIBaseURL)
	assert.Equal(t, filepath.Clean(root), cfg.AssetRoot)
	assert.Equal(t, 25, cfg.StartID)
	assert.Equal(t, DumpDriverSQLite, cfg.DumpDriver)
	assert.Equal(t, "./data/pokedex.db", cfg.DumpPath)
	assert.Equal(t, 0.5, cfg.RateLimit)
	assert.True(t, cfg.Fullscreen)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("POKEDEX_START_ID", "-4")
	t.Setenv("POKEDEX_RATE_BURST", "lots")
	t.Setenv("POKEDEX_RATE_LIMIT", "fast")
	t.Setenv("POKEDEX_FULLSCREEN", "maybe")

	cfg := Load()
	assert.Equal(t, 1, cfg.StartID)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.False(t, cfg.Fullscreen)
}
