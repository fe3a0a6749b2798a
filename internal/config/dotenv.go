package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvSaveFile = "YACHTSCORE_SAVE_FILE"
	EnvAutosave = "YACHTSCORE_AUTOSAVE"
	EnvASCII    = "YACHTSCORE_ASCII"
	EnvSort     = "YACHTSCORE_SORT"
	EnvLogLevel = "YACHTSCORE_LOG_LEVEL"
	EnvLogFile  = "YACHTSCORE_LOG_FILE"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides file settings with any YACHTSCORE_* variables that are set.
// Unparsable booleans are reported and leave the file value in place.
func ApplyEnv(cfg *FileConfig) error {
	var errs []error
	if raw := os.Getenv(EnvSaveFile); raw != "" {
		cfg.Board.SaveFile = &raw
	}
	if raw := os.Getenv(EnvAutosave); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Board.Autosave = &value
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAutosave, err))
		}
	}
	if raw := os.Getenv(EnvASCII); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Board.ASCII = &value
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvASCII, err))
		}
	}
	if raw := os.Getenv(EnvSort); raw != "" {
		cfg.Board.Sort = &raw
	}
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		cfg.Log.Level = &raw
	}
	if raw := os.Getenv(EnvLogFile); raw != "" {
		cfg.Log.File = &raw
	}
	return errors.Join(errs...)
}
