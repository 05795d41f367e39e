// Package config loads runtime settings from the environment. A .env file
// in the working directory is read first when present, matching how the
// server is run in development.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and the terminal client.
type Config struct {
	Addr          string
	WorldDir      string
	SaveDir       string
	TurnLogPath   string
	LLMBaseURL    string
	LLMAPIKey     string
	WorldModel    string
	GameModel     string
	JapaneseModel string
	LLMTimeout    time.Duration
}

// Load reads the optional .env file and the JPMUD_* variables, applying
// defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "err", err)
	}

	return Config{
		Addr:          getenv("JPMUD_ADDR", ":8000"),
		WorldDir:      getenv("JPMUD_WORLD_DIR", "worlds/demo"),
		SaveDir:       getenv("JPMUD_SAVE_DIR", "saved_games"),
		TurnLogPath:   getenv("JPMUD_TURNLOG", "turns.db"),
		LLMBaseURL:    getenv("JPMUD_LLM_URL", "http://localhost:9000/v1"),
		LLMAPIKey:     os.Getenv("JPMUD_LLM_API_KEY"),
		WorldModel:    getenv("JPMUD_WORLD_MODEL", "qwen2.5:7b"),
		GameModel:     getenv("JPMUD_GAME_MODEL", "qwen2.5:14b"),
		JapaneseModel: getenv("JPMUD_JAPANESE_MODEL", "qwen2.5:14b"),
		LLMTimeout:    getduration("JPMUD_LLM_TIMEOUT", 120*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
