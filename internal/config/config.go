// Package config loads mvvideos configuration from TOML, resolving the
// usual locations and applying defaults, normalization, and validation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const configFileName = "mvvideos.toml"

// Defaults supplies fallback values for the selection flags.
type Defaults struct {
	Extensions string `toml:"extensions"`
	Size       string `toml:"size"`
	Confirm    bool   `toml:"confirm"`
}

// Discovery configures the external find invocation.
type Discovery struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	FindBinary     string `toml:"find_binary"`
}

// History configures the SQLite run journal.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging configures console log output.
type Logging struct {
	Level              string            `toml:"level"`
	Color              string            `toml:"color"`
	ComponentOverrides map[string]string `toml:"component_overrides"`
}

// Config encapsulates all configuration values for mvvideos.
type Config struct {
	Defaults  Defaults  `toml:"defaults"`
	Discovery Discovery `toml:"discovery"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// SampleConfig returns the commented sample written by `mvvideos config init`.
func SampleConfig() string {
	return sampleConfig
}

// DefaultLocations lists the candidate config paths in resolution order:
// home-directory dotfile, /etc, then a local override in the working
// directory. The first existing file wins.
func DefaultLocations() []string {
	locations := make([]string, 0, 3)
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		locations = append(locations, filepath.Join(home, "."+configFileName))
	}
	locations = append(locations, filepath.Join("/etc", configFileName))
	locations = append(locations, configFileName)
	return locations
}

// Load locates, parses, and validates a configuration file. An empty path
// triggers the smart-load over DefaultLocations; no file at all is not an
// error and yields pure defaults. The returned values are the config, the
// path it was (or would have been) read from, and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	locations := DefaultLocations()
	for _, candidate := range locations {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return locations[0], false, nil
}
