// Package cache stores assembled documents and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries as files, for the CLI
//   - [RedisCache] shares entries between server instances
//   - [NullCache] stores nothing, for tests or --no-cache
//
// Keys come from a [Keyer] so that every entry point derives identical keys
// for identical inputs.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind.
const (
	TTLDocument = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
