package config

import (
	"os"
	"testing"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

func TestLoadDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("MAX_ROWS")
	os.Unsetenv("MAX_COLS")
	os.Unsetenv("SHEETSH_PROMPT")

	cfg := Load()
	if cfg.MaxRows != primitive.MaxRows {
		t.Errorf("MaxRows = %d, want %d", cfg.MaxRows, primitive.MaxRows)
	}
	if cfg.MaxCols != primitive.MaxCols {
		t.Errorf("MaxCols = %d, want %d", cfg.MaxCols, primitive.MaxCols)
	}
	if cfg.Prompt != "> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "> ")
	}
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	os.Setenv("MAX_ROWS", "100")
	os.Setenv("SHEETSH_PROMPT", "sheet> ")
	defer os.Unsetenv("MAX_ROWS")
	defer os.Unsetenv("SHEETSH_PROMPT")

	cfg := Load()
	if cfg.MaxRows != 100 {
		t.Errorf("MaxRows = %d, want 100", cfg.MaxRows)
	}
	if cfg.Prompt != "sheet> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "sheet> ")
	}
}

func TestLoadIgnoresInvalidOverride(t *testing.T) {
	os.Setenv("MAX_ROWS", "not-a-number")
	defer os.Unsetenv("MAX_ROWS")

	cfg := Load()
	if cfg.MaxRows != primitive.MaxRows {
		t.Errorf("MaxRows = %d, want fallback %d", cfg.MaxRows, primitive.MaxRows)
	}
}
