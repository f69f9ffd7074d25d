// Package storage defines the persistence interfaces and serialization
// helpers for summarization results.
//
// The concrete BadgerDB implementation lives in storage/badger. Results are
// cached per (source, language) pair; a save for an existing pair fails with
// ErrDuplicateKey so callers can treat concurrent duplicate runs as cache
// hits.
package storage
