// Package kv holds the key/value repositories the session store persists to.
//
// Three backends share the Repository contract: SQLite (default, a local
// file), Redis (shared between machines) and memory (tests, throwaway runs).
// Get on a missing key returns (nil, nil) for all of them.
package kv

import (
	"context"
)

// Pair is one key/value write.
type Pair struct {
	Key   string
	Value []byte
}

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetAll writes pairs in order as one unit where the backend allows it.
	SetAll(ctx context.Context, pairs ...Pair) error
	Delete(ctx context.Context, keys ...string) error
	// List returns every stored pair. Clear removes them all.
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}
