// Package kvstore persists JSON-encoded values under string keys.
//
// A Medium is the synchronous string key-value surface (the role a browser's
// localStorage plays for a web app). Three media are provided: SQLite for the
// default on-disk store, a single JSON file guarded by an advisory file lock,
// and an in-memory map for tests and throwaway sessions.
//
// Store layers typed access on top: Get decodes the stored JSON and falls back
// to the caller's default when the key is missing or the value is corrupt, and
// Set encodes and writes through immediately. Keys are written independently;
// there is no transaction spanning several keys.
package kvstore
