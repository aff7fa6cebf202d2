// Package cache stores rendered filter designs between runs.
//
// A Cache is a byte store with per-entry expiry. Three backends are
// provided: FileCache for the CLI (one JSON entry file per key under the
// user cache directory), RedisCache for the HTTP server when several
// instances share results, and NullCache when caching is disabled.
//
// Keys come from a Keyer so that the CLI and server agree on the layout
// and a ScopedKeyer can keep their entries apart in a shared store.
// Values are encoded with Marshal/Unmarshal (msgpack).
package cache

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLDesign = 7 * 24 * time.Hour
	TTLPoles  = 30 * 24 * time.Hour
)

// Marshal encodes v for storage.
func Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes data written by Marshal into v.
func Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// GetValue reads and decodes the entry under key into v. It reports false
// on a miss or when the stored bytes no longer decode.
func GetValue(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetValue encodes v and stores it under key.
func SetValue(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
