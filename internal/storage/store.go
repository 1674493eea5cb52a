// Package storage provides the persistent key-value store both the
// protection and durability layers sit on.
//
// # Overview
//
// The package defines a Store interface for get/set/remove operations on
// opaque byte values, a SQLite-backed implementation (SQLiteStore) over a
// dbx.DBTX, and an in-memory implementation (MemoryStore) for tests and
// ephemeral use. Values are JSON documents encoded by the callers; the
// store itself does not interpret them.
//
// # Semantics
//
// Get returns (nil, nil) for an absent key so callers can treat "nothing
// stored" as a normal condition rather than an error. Set upserts. A
// corrupted or unavailable backing store surfaces as an error wrapped with
// common.ErrStorageUnavailable.
package storage

import "context"

// Store is the key-value persistence boundary of the app.
type Store interface {
	// Get returns the value stored under key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all stored key/value pairs.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes everything.
	Clear(ctx context.Context) error
}
