package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bandplanner/internal/fileutil"
	"bandplanner/internal/roster"
)

const (
	// FileName is the default export artifact name.
	FileName = "band-data.json"
	// ContentType is the media type of an export document.
	ContentType = "application/json"
)

// ParseError reports an import document that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to read JSON file: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a JSON document missing required fields or holding
// them in the wrong shape.
type ValidationError struct {
	Missing []string
	Reason  string
	// Err is the underlying roster error, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid JSON format: missing %s", strings.Join(e.Missing, " and "))
	}
	return fmt.Sprintf("invalid JSON format: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches roster.ErrIncompleteSnapshot so callers can treat both layers alike.
func (e *ValidationError) Is(target error) bool {
	return target == roster.ErrIncompleteSnapshot
}

// document mirrors roster.Snapshot with raw fields so absence and null can be
// told apart from empty arrays.
type document struct {
	Members json.RawMessage `json:"members"`
	Songs   json.RawMessage `json:"songs"`
}

// Export writes snap as indented UTF-8 JSON.
func Export(w io.Writer, snap roster.Snapshot) error {
	if snap.Members == nil {
		snap.Members = []roster.Member{}
	}
	if snap.Songs == nil {
		snap.Songs = []roster.Song{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Marshal returns the export document for snap.
func Marshal(snap roster.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import parses an export document. Invalid JSON yields *ParseError; a
// document without both members and songs, or with empty or repeated ids,
// yields *ValidationError.
func Import(r io.Reader) (roster.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal is Import for an in-memory document.
func Unmarshal(data []byte) (roster.Snapshot, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return roster.Snapshot{}, &ParseError{Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return roster.Snapshot{}, &ValidationError{Reason: "document is not a JSON object"}
	}

	var missing []string
	if isAbsent(doc.Members) {
		missing = append(missing, "members")
	}
	if isAbsent(doc.Songs) {
		missing = append(missing, "songs")
	}
	if len(missing) > 0 {
		return roster.Snapshot{}, &ValidationError{Missing: missing}
	}

	var snap roster.Snapshot
	if err := json.Unmarshal(doc.Members, &snap.Members); err != nil {
		return roster.Snapshot{}, &ValidationError{Reason: fmt.Sprintf("members: %v", err)}
	}
	if err := json.Unmarshal(doc.Songs, &snap.Songs); err != nil {
		return roster.Snapshot{}, &ValidationError{Reason: fmt.Sprintf("songs: %v", err)}
	}
	for i := range snap.Songs {
		if snap.Songs[i].RequiredMembers == nil {
			snap.Songs[i].RequiredMembers = []string{}
		}
	}
	if err := snap.CheckIDs(); err != nil {
		return roster.Snapshot{}, &ValidationError{Reason: err.Error(), Err: err}
	}
	return snap, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ReadFile loads and parses the document at path. It returns ctx.Err() if ctx
// is done before the read completes.
func ReadFile(ctx context.Context, path string) (roster.Snapshot, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return roster.Snapshot{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return roster.Snapshot{}, fmt.Errorf("read %s: %w", path, res.err)
		}
		return Unmarshal(res.data)
	}
}

// WriteFile exports snap to path, replacing any existing file.
func WriteFile(path string, snap roster.Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// IsUserError reports whether err is an import problem to show the user
// rather than an internal failure.
func IsUserError(err error) bool {
	var parseErr *ParseError
	var validationErr *ValidationError
	return errors.As(err, &parseErr) || errors.As(err, &validationErr)
}
