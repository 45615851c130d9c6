package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.Defaults.Extensions = strings.TrimSpace(c.Defaults.Extensions)
	if c.Defaults.Extensions == "" {
		c.Defaults.Extensions = defaultExtensions
	}
	c.Defaults.Size = strings.TrimSpace(c.Defaults.Size)
	if c.Defaults.Size == "" {
		c.Defaults.Size = defaultSize
	}

	c.Discovery.FindBinary = strings.TrimSpace(c.Discovery.FindBinary)
	if c.Discovery.FindBinary == "" {
		c.Discovery.FindBinary = defaultFindBinary
	}

	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath
	}
	expanded, err := expandPath(c.History.Path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded

	c.Logging.Color = strings.TrimSpace(c.Logging.Color)
	if c.Logging.Color == "" {
		c.Logging.Color = defaultLogColor
	}
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	return nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
