// Package engine implements the table engine: it owns the search term,
// per-column filter values, sort key and direction, and view mode of one
// displayed table, and derives the filtered and sorted record sequences from
// a caller-supplied collection.
//
// Derivation is a pure function of (State, Options, data). Nothing is cached
// between calls, so recomputing after every state change never drifts from
// the source collection.
//
// An Engine is single-threaded: every operation runs to completion on the
// calling goroutine and the owner must serialise calls.
package engine
