// Package snapshot converts the roster to and from its JSON backup document,
// {"members": [...], "songs": [...]}, the format written to band-data.json.
package snapshot
