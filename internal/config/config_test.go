package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPathsFollowXDG(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))

	tests := []struct {
		got  string
		want string
	}{
		{DefaultConfigPath(), filepath.Join(root, "config", "yachtscore", "config.toml")},
		{DefaultDBPath(), filepath.Join(root, "data", "yachtscore", "yachtscore.db")},
		{DefaultSaveFilePath(), filepath.Join(root, "data", "yachtscore", "scoreboard.json")},
		{DefaultLogPath(), filepath.Join(root, "state", "yachtscore", "yachtscore.log")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Board.SaveFile != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[board]
save-file = "/tmp/game.yaml"
autosave = true
sort = "total"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Board.SaveFile == nil || *cfg.Board.SaveFile != "/tmp/game.yaml" {
		t.Fatalf("unexpected save-file %v", cfg.Board.SaveFile)
	}
	if cfg.Board.Autosave == nil || !*cfg.Board.Autosave {
		t.Fatalf("expected autosave true")
	}
	if cfg.Board.ASCII != nil {
		t.Fatalf("expected ascii unset")
	}
	if cfg.Board.Sort == nil || *cfg.Board.Sort != "total" {
		t.Fatalf("unexpected sort %v", cfg.Board.Sort)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected level %v", cfg.Log.Level)
	}
}

func TestLoadConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template must decode: %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[board]\nautosave = \"maybe\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	file := "/from/file.json"
	autosave := false
	cfg := FileConfig{Board: BoardConfig{SaveFile: &file, Autosave: &autosave}}

	t.Setenv(EnvSaveFile, "/from/env.yaml")
	t.Setenv(EnvAutosave, "true")
	t.Setenv(EnvASCII, "")
	t.Setenv(EnvLogLevel, "warn")

	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if *cfg.Board.SaveFile != "/from/env.yaml" {
		t.Fatalf("expected env save file, got %q", *cfg.Board.SaveFile)
	}
	if !*cfg.Board.Autosave {
		t.Fatalf("expected env autosave")
	}
	if cfg.Board.ASCII != nil {
		t.Fatalf("empty env must not set ascii")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "warn" {
		t.Fatalf("expected env level")
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	ascii := true
	cfg := FileConfig{Board: BoardConfig{ASCII: &ascii}}
	t.Setenv(EnvASCII, "sometimes")
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatalf("expected error for bad bool")
	}
	if !*cfg.Board.ASCII {
		t.Fatalf("bad env value must keep file value")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	body := EnvSort + "=name\n" + EnvLogFile + "=/from/dotenv.log\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvSort, "total")
	t.Setenv(EnvLogFile, "")
	if err := os.Unsetenv(EnvLogFile); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv(EnvSort); got != "total" {
		t.Fatalf("existing env must win, got %q", got)
	}
	if got := os.Getenv(EnvLogFile); got != "/from/dotenv.log" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
