package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"bandplanner/internal/config"
	"bandplanner/internal/logging"
)

// ErrDecode marks a stored value that exists but is not valid JSON for the
// requested type.
var ErrDecode = errors.New("stored value could not be decoded")

// DecodeError reports which key held an undecodable value.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Store provides typed JSON access to a Medium.
type Store struct {
	medium Medium
	logger *slog.Logger
}

// New wraps medium. A nil logger discards output.
func New(medium Medium, logger *slog.Logger) *Store {
	return &Store{
		medium: medium,
		logger: logging.NewComponentLogger(logger, "kvstore"),
	}
}

// Open builds a Store on the medium configured in cfg.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	medium, err := OpenMedium(cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(medium, logger), nil
}

// Close releases the underlying medium.
func (s *Store) Close() error {
	if s == nil || s.medium == nil {
		return nil
	}
	return s.medium.Close()
}

// Lookup reads and decodes the value under key. A missing key reports
// found=false with a nil error; an undecodable value returns a *DecodeError.
func Lookup[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := s.medium.GetItem(ensureContext(ctx), key)
	if err != nil {
		return out, false, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		var zero T
		return zero, false, &DecodeError{Key: key, Err: err}
	}
	return out, true, nil
}

// Get returns the value under key, or def when the key is absent, unreadable,
// or holds a value that does not decode into T. Failures are logged, never
// returned.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	value, ok, err := Lookup[T](ctx, s, key)
	if err != nil {
		eventType := "kv_read_failed"
		if errors.Is(err, ErrDecode) {
			eventType = "kv_decode_failed"
		}
		logging.WarnWithContext(s.logger, "stored value unusable; using default", eventType,
			logging.String(logging.FieldKey, key),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "export a backup and reset if this persists"),
			logging.String(logging.FieldImpact, "the stored value is ignored until overwritten"),
		)
		return def
	}
	if !ok {
		return def
	}
	return value
}

// Set encodes value as JSON and writes it under key, replacing any prior value.
func Set[T any](ctx context.Context, s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.medium.SetItem(ensureContext(ctx), key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	s.logger.Debug("stored value", logging.String(logging.FieldKey, key), logging.Int("bytes", len(data)))
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
