// Package roster owns band members, songs, and the session state derived from
// them.
//
// Model is the single owner of the member and song collections. Every
// mutating method persists the affected collection to the kvstore before it
// returns, so a process restart always sees the last successful change. The
// availability set and the pending song selection are session state and are
// never written to the store.
//
// Collections follow one Ordering policy per Model: alphabetical (locale-aware
// collation) or insertion order. The policy is reapplied after every insert
// and to imported collections.
package roster
