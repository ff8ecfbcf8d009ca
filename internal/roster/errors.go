package roster

import "errors"

var (
	// ErrNotFound is returned when a member or song id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownMember is returned when a song references a member id that is
	// not in the roster.
	ErrUnknownMember = errors.New("unknown member")
	// ErrIncompleteSnapshot is returned by ReplaceAll when the snapshot lacks
	// its members or songs collection.
	ErrIncompleteSnapshot = errors.New("snapshot must contain members and songs")
	// ErrImportSuperseded is returned when a newer import began before this
	// one committed.
	ErrImportSuperseded = errors.New("import superseded by a newer import")
	// ErrInvalidID is returned when a snapshot holds an empty or repeated
	// member or song id.
	ErrInvalidID = errors.New("invalid id")
)
