package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"bandplanner/internal/fileutil"
	"bandplanner/internal/logging"
)

// FileMedium stores every key in one JSON object file. Reads take a shared
// advisory lock and writes an exclusive one, so separate processes never
// observe a half-written file.
type FileMedium struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewFileMedium returns a medium backed by path. The file is created lazily on
// the first SetItem.
func NewFileMedium(path string, logger *slog.Logger) *FileMedium {
	return &FileMedium{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "kvstore_file"),
	}
}

// Path returns the backing file location.
func (m *FileMedium) Path() string { return m.path }

func (m *FileMedium) GetItem(_ context.Context, key string) (string, bool, error) {
	if err := m.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("lock %s: %w", m.path, err)
	}
	defer m.unlock()

	items, err := m.read()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (m *FileMedium) SetItem(_ context.Context, key, value string) error {
	if err := m.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", m.path, err)
	}
	defer m.unlock()

	items, err := m.read()
	if err != nil {
		// Unreadable file: move it aside and start from an empty map.
		backup := m.path + ".corrupt"
		if renameErr := fileutil.MoveAside(m.path, ".corrupt"); renameErr != nil {
			return fmt.Errorf("move corrupt store aside: %w", renameErr)
		}
		logging.WarnWithContext(m.logger, "store file unreadable; starting fresh", "kv_file_corrupt",
			logging.Error(err),
			logging.String("backup", backup),
			logging.String(logging.FieldErrorHint, "inspect the backup file to recover data"),
			logging.String(logging.FieldImpact, "other keys in the file are reset"),
		)
		items = make(map[string]string)
	}
	items[key] = value
	return m.write(items)
}

// Close is a no-op; the lock is only held for the duration of each call.
func (m *FileMedium) Close() error {
	return nil
}

func (m *FileMedium) unlock() {
	if err := m.lock.Unlock(); err != nil {
		m.logger.Debug("release file lock failed", logging.Error(err))
	}
}

func (m *FileMedium) read() (map[string]string, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]string), nil
	}
	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return items, nil
}

// write replaces the file atomically.
func (m *FileMedium) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := fileutil.WriteAtomic(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
