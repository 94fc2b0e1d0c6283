// Package config loads the engine's environment-overridable limits.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// Config holds the coordinate bounds and the sheetsh prompt, each
// overridable from the environment.
type Config struct {
	MaxRows int
	MaxCols int
	Prompt  string
}

// Load reads MAX_ROWS, MAX_COLS, and SHEETSH_PROMPT from the
// environment, optionally populated first from a .env file in the
// working directory. Any value that is absent or fails to parse falls
// back to the engine's compiled-in defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		MaxRows: intFromEnv("MAX_ROWS", primitive.MaxRows),
		MaxCols: intFromEnv("MAX_COLS", primitive.MaxCols),
		Prompt:  firstNonEmpty(os.Getenv("SHEETSH_PROMPT"), "> "),
	}
}

func intFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
