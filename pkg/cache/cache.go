// Package cache stores rendered diagram artifacts.
//
// # Overview
//
// Rendering is cheap, but SVG output goes through Graphviz and the HTTP
// server may see the same script many times. A [Cache] keeps rendered
// artifacts keyed by a hash of the script and the render options.
//
// # Backends
//
//   - [FileCache]: JSON entries below a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives cache keys. [DefaultKeyer] hashes the inputs;
// [ScopedKeyer] adds a namespace prefix so several deployments can share
// one Redis.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(script), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact is the lifetime of a rendered artifact. Keys include a hash of
// the script, so entries never go stale; the TTL only bounds disk and memory.
const TTLArtifact = 7 * 24 * time.Hour
