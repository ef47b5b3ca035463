// Package cache stores rendered artifacts so repeated renders of an unchanged
// warehouse skip Graphviz.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between processes through Redis
//   - [NullCache] stores nothing (--no-cache)
//
// Keys come from [RenderKey], which hashes the DOT source together with the
// output format, so any change to the layout, stock or render options yields
// a new key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKeyOpts are the render settings that change output for the same DOT
// source.
type RenderKeyOpts struct {
	Format string
}

// RenderKey returns the cache key for rendering dot with opts, of the form
// "render:<format>:<sha256 of dot>".
func RenderKey(dot string, opts RenderKeyOpts) string {
	return "render:" + opts.Format + ":" + Hash([]byte(dot))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing: every Get misses and every write succeeds.
// It backs --no-cache and stands in when no cache directory is available.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
