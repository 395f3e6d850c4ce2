package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nzvengeance/pokedex/internal/assets"
	"github.com/nzvengeance/pokedex/internal/config"
	"github.com/nzvengeance/pokedex/internal/dump"
	"github.com/nzvengeance/pokedex/internal/pokeapi"
	"github.com/nzvengeance/pokedex/internal/ui"
)

const appID = "io.github.nzvengeance.pokedex"

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// Load config
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Pokedex starting up")

	// Create PokeAPI client
	client := pokeapi.NewClient(cfg.APIBaseURL, cfg.RateLimit, cfg.RateBurst)

	// Keep the last fetched payload
	recorder, closeRecorder, err := dump.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open last fetch dump")
	}
	defer closeRecorder()
	if recorder != nil {
		client.SetRecorder(recorder)
	}
	log.Info().Str("driver", cfg.DumpDriver).Str("path", cfg.DumpPath).Msg("last fetch dump configured")

	loader := assets.NewLoader(cfg.SpriteBaseURL, cfg.AssetRoot, cfg.RateLimit, cfg.RateBurst)

	a := app.NewWithID(appID)
	pokedex := ui.NewPokedex(a, cfg, client, loader)
	pokedex.ShowAndRun()

	log.Info().Msg("Pokedex stopped")
}
