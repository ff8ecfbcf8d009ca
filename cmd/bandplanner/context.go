package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bandplanner/internal/config"
	"bandplanner/internal/kvstore"
	"bandplanner/internal/logging"
	"bandplanner/internal/roster"
)

type commandContext struct {
	configFlag    *string
	ephemeralFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, ephemeralFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		ephemeralFlag: ephemeralFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.ephemeralFlag != nil && *c.ephemeralFlag {
			cfg.Storage.Backend = config.BackendMemory
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withModel opens the configured store, loads the roster and hands it to fn.
// The store is closed once fn returns.
func (c *commandContext) withModel(cmd *cobra.Command, fn func(context.Context, *roster.Model) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	store, err := kvstore.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.WarnWithContext(logger, "failed to close store", "store_close_failed", logging.Error(cerr))
		}
	}()

	ordering, err := roster.NewOrdering(cfg.Roster.Ordering, cfg.Roster.Locale)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	model, err := roster.Open(ctx, store, roster.Options{Ordering: ordering, Logger: logger})
	if err != nil {
		return err
	}
	return fn(ctx, model)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
