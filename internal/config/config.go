// internal/config/config.go
//
// Environment configuration for the crossword server.
// Values come from the process environment (optionally seeded from .env by
// godotenv in the serve command); anything unset or unparsable falls back to
// its default.
//
// Environment variables:
//   PORT                          HTTP port (5175)
//   LOG_LEVEL                     zerolog level (info)
//   DB_PATH                       SQLite file (./data/crossword.db)
//   JWT_SECRET                    HMAC key for bearer tokens (dev_secret_change_me)
//   CLIENT_ORIGIN                 CORS origin (http://localhost:5173)
//   NODE_ENV                      "production" marks cookies Secure/SameSite=None
//   PUZZLES_DIR                   extra *.json puzzle files (none)
//   DAILY_SALT                    daily puzzle salt (local_dev_salt)
//   CROSSWORD_TIME_LIMIT          seconds per session (2400)
//   CROSSWORD_HINT_LIMIT          hints per session (3)
//   CROSSWORD_HINTS               enable hints (true)
//   CROSSWORD_AUDIO               enable narration (true)
//   CROSSWORD_LANGUAGE            narration language, es or en (es)
//   CROSSWORD_STRICT_LAYOUT       reject puzzles with layout issues (false)
//   CROSSWORD_COMPLETION_DELAY_MS grace delay before a solved puzzle ends (1000)
//   CROSSWORD_ENDED_TTL_MIN       minutes a finished session stays readable (10)
//   CROSSWORD_IDLE_TTL_MIN        minutes before an untouched, unstarted session is dropped (120)

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/crossword/internal/game"
)

type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	JWTSecret    string
	ClientOrigin string
	Production   bool
	PuzzlesDir   string
	DailySalt    string
	StrictLayout bool
	EndedTTL     time.Duration // finished or abandoned sessions are dropped after this
	IdleTTL      time.Duration // never started sessions are dropped after this

	Game game.Options
}

// FromEnv reads the configuration from the environment.
func FromEnv() Config {
	opts := game.DefaultOptions()
	opts.TimeLimit = envInt("CROSSWORD_TIME_LIMIT", game.DefaultTimeLimit)
	opts.HintLimit = envInt("CROSSWORD_HINT_LIMIT", game.DefaultHintLimit)
	opts.EnableHints = envBool("CROSSWORD_HINTS", true)
	opts.EnableAudio = envBool("CROSSWORD_AUDIO", true)
	opts.Language = getEnv("CROSSWORD_LANGUAGE", "es")
	opts.CompletionDelay = time.Duration(envInt("CROSSWORD_COMPLETION_DELAY_MS",
		int(game.DefaultCompletionDelay/time.Millisecond))) * time.Millisecond

	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/crossword.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		PuzzlesDir:   os.Getenv("PUZZLES_DIR"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		StrictLayout: envBool("CROSSWORD_STRICT_LAYOUT", false),
		EndedTTL:     time.Duration(envInt("CROSSWORD_ENDED_TTL_MIN", 10)) * time.Minute,
		IdleTTL:      time.Duration(envInt("CROSSWORD_IDLE_TTL_MIN", 120)) * time.Minute,
		Game:         opts,
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k))); err == nil {
		return v
	}
	return def
}
