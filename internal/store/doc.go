// Package store keeps the run history of ghprofile in an embedded BoltDB file.
//
// Each run is one JSON value in the "runs" bucket, keyed by its UTC start
// time followed by a random ID so that a cursor walks runs in time order:
//
//	history, err := store.OpenHistory(path)
//	runs, err := history.Recent(10) // newest first
//
// Only run outcomes are stored. Repository listings are always fetched live.
package store
