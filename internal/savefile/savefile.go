// Package savefile reads and writes scoreboard documents as JSON or YAML files.
package savefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/yachtscore/internal/players"
)

// Format is a document encoding.
type Format int

// Supported formats.
const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the format from the file extension. Unknown extensions use JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Encode serializes the registry in the given format.
func Encode(f Format, reg *players.Registry) ([]byte, error) {
	switch f {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(reg); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(reg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Decode parses a document into a new registry.
func Decode(f Format, data []byte) (*players.Registry, error) {
	reg := players.New()
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, reg)
	default:
		err = json.Unmarshal(data, reg)
	}
	if err != nil {
		if errors.Is(err, players.ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", players.ErrInvalidDocument, err)
	}
	return reg, nil
}

// Save writes the registry to path, replacing the file atomically.
func Save(path string, reg *players.Registry) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("save path is empty")
	}
	data, err := Encode(FormatFor(path), reg)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// Load reads path into a new registry. The caller's registry is never
// touched, so a failed load leaves the current game intact.
func Load(path string) (*players.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("load path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	reg, err := Decode(FormatFor(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return reg, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "scoreboard-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}
