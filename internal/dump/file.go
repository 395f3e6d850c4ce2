// Package dump writes the raw payload of the last successful fetch to a local
// file. The file is overwritten on every fetch and never read by the app.
package dump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/rs/zerolog/log"
)

type FileRecorder struct {
	path string
}

func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{path: path}
}

// RecordFetch replaces the dump file with fetch.RawJSON.
func (r *FileRecorder) RecordFetch(_ context.Context, fetch models.LastFetch) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating dump directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pokedex-*.json")
	if err != nil {
		return fmt.Errorf("creating temp dump: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(fetch.RawJSON); err != nil {
		tmp.Close()
		return fmt.Errorf("writing dump: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing dump: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing dump: %w", err)
	}

	log.Debug().Str("path", r.path).Int("id", fetch.PokemonID).Msg("wrote last fetch dump")
	return nil
}
