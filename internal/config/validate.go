package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateRoster(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
		return nil
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (expected sqlite, file, or memory)", c.Storage.Backend)
	}
}

func (c *Config) validateRoster() error {
	switch c.Roster.Ordering {
	case OrderingAlphabetical, OrderingInsertion:
	default:
		return fmt.Errorf("roster.ordering: unsupported value %q (expected alphabetical or insertion)", c.Roster.Ordering)
	}
	if _, err := language.Parse(c.Roster.Locale); err != nil {
		return fmt.Errorf("roster.locale: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
