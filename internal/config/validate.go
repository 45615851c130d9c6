package config

import (
	"errors"
	"fmt"

	"mvvideos/internal/logging"
	"mvvideos/internal/selection"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := selection.ParseSize(c.Defaults.Size); err != nil {
		return fmt.Errorf("defaults.size: %w", err)
	}
	if _, err := selection.ParseExtensions(c.Defaults.Extensions); err != nil {
		return fmt.Errorf("defaults.extensions: %w", err)
	}
	if c.Discovery.TimeoutSeconds < 0 {
		return errors.New("discovery.timeout_seconds must not be negative")
	}
	switch c.Logging.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("logging.color must be auto, always, or never, got %q", c.Logging.Color)
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	for component, level := range c.Logging.ComponentOverrides {
		if _, err := logging.ParseLevel(level); err != nil {
			return fmt.Errorf("logging.component_overrides[%s]: %w", component, err)
		}
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	return nil
}
