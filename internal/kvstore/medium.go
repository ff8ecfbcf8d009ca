package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bandplanner/internal/config"
)

// Medium is a synchronous string key-value surface.
type Medium interface {
	// GetItem returns the raw value stored under key and whether it existed.
	GetItem(ctx context.Context, key string) (string, bool, error)
	// SetItem overwrites the value stored under key.
	SetItem(ctx context.Context, key, value string) error
	Close() error
}

// ErrUnknownBackend is returned by Open for unsupported storage backends.
var ErrUnknownBackend = errors.New("unknown storage backend")

// OpenMedium opens the medium selected by cfg.Storage.Backend.
func OpenMedium(cfg *config.Config, logger *slog.Logger) (Medium, error) {
	if cfg == nil {
		return nil, errors.New("kvstore requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.StoragePath())
	case config.BackendFile:
		return NewFileMedium(cfg.StoragePath(), logger), nil
	case config.BackendMemory:
		return NewMemoryMedium(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
}
