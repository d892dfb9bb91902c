package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be zero or positive, got %d", c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	return nil
}
