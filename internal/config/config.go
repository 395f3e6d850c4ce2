package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DumpDriverFile   = "file"
	DumpDriverSQLite = "sqlite"
	DumpDriverNone   = "none"
)

type Config struct {
	// Remote endpoints
	APIBaseURL    string
	SpriteBaseURL string

	// Local assets (background image, types/{type}.png)
	AssetRoot string

	// Navigation
	StartID int

	// Last-fetch dump
	DumpDriver string // "file", "sqlite" or "none"
	DumpPath   string

	// HTTP pacing
	RateLimit float64 // requests per second
	RateBurst int

	// Window
	WindowWidth  float32
	WindowHeight float32
	Fullscreen   bool

	LogLevel string
}

func Load() *Config {
	driver := strings.ToLower(getEnv("POKEDEX_DUMP_DRIVER", DumpDriverFile))
	defaultDump := "./data/Pokedex.json"
	if driver == DumpDriverSQLite {
		defaultDump = "./data/pokedex.db"
	}

	startID := getEnvInt("POKEDEX_START_ID", 1)
	if startID < 1 {
		startID = 1
	}

	return &Config{
		APIBaseURL:    strings.TrimRight(getEnv("POKEDEX_API_BASE_URL", "https://pokeapi.co/api/v2"), "/"),
		SpriteBaseURL: strings.TrimRight(getEnv("POKEDEX_SPRITE_BASE_URL", "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites"), "/"),
		AssetRoot:     filepath.Clean(getEnv("POKEDEX_ASSET_ROOT", "./assets")),
		StartID:       startID,
		DumpDriver:    driver,
		DumpPath:      getEnv("POKEDEX_DUMP_PATH", defaultDump),
		RateLimit:     getEnvFloat("POKEDEX_RATE_LIMIT", 5),
		RateBurst:     getEnvInt("POKEDEX_RATE_BURST", 5),
		WindowWidth:   float32(getEnvInt("POKEDEX_WINDOW_WIDTH", 810)),
		WindowHeight:  float32(getEnvInt("POKEDEX_WINDOW_HEIGHT", 600)),
		Fullscreen:    getEnvBool("POKEDEX_FULLSCREEN", false),
		LogLevel:      getEnv("POKEDEX_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	val = strings.ToLower(val)
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fallback
	}
	return f
}
