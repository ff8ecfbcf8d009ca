package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeRoster()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultStorageBackend
	}
	c.Storage.FileName = strings.TrimSpace(c.Storage.FileName)
	if c.Storage.FileName == "" {
		switch c.Storage.Backend {
		case BackendFile:
			c.Storage.FileName = "roster.json"
		default:
			c.Storage.FileName = "roster.db"
		}
	}
}

func (c *Config) normalizeRoster() {
	c.Roster.Ordering = strings.ToLower(strings.TrimSpace(c.Roster.Ordering))
	if c.Roster.Ordering == "" {
		c.Roster.Ordering = defaultOrdering
	}
	c.Roster.Locale = strings.TrimSpace(c.Roster.Locale)
	if c.Roster.Locale == "" {
		c.Roster.Locale = defaultLocale
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
