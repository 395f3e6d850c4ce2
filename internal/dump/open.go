package dump

import (
	"fmt"

	"github.com/nzvengeance/pokedex/internal/config"
	"github.com/nzvengeance/pokedex/internal/database"
	"github.com/nzvengeance/pokedex/internal/pokeapi"
)

// Open returns the recorder selected by cfg.DumpDriver and a func that
// releases it. For the "none" driver the recorder is nil.
func Open(cfg *config.Config) (pokeapi.Recorder, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DumpDriver {
	case config.DumpDriverFile:
		return NewFileRecorder(cfg.DumpPath), noop, nil
	case config.DumpDriverSQLite:
		db, err := database.New(cfg)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	case config.DumpDriverNone:
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported dump driver: %s", cfg.DumpDriver)
	}
}
