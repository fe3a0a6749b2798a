// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Board BoardConfig `toml:"board"`
	Log   LogConfig   `toml:"log"`
}

// BoardConfig maps scoreboard settings.
type BoardConfig struct {
	SaveFile *string `toml:"save-file"`
	Autosave *bool   `toml:"autosave"`
	ASCII    *bool   `toml:"ascii"`
	Sort     *string `toml:"sort"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Template is written by the config command when no file exists yet.
const Template = `# yachtscore configuration

[board]
# save-file = "~/.local/share/yachtscore/scoreboard.json"
# autosave = false
# ascii = false
# sort = "added" # added, name or total

[log]
# level = "info" # debug, info, warn or error
# file = "~/.local/state/yachtscore/yachtscore.log"
`
