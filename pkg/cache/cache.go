// Package cache stores solved lots and rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP server)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// # Keys
//
// A [Keyer] derives keys from content hashes, so identical inputs share an
// entry no matter which site file or request they came from:
//
//	keyer := cache.NewDefaultKeyer()
//	lotKey := keyer.LotKey(cache.Hash(request))
//	svgKey := keyer.ArtifactKey(cache.Hash(lotJSON), cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes every key to keep tenants apart.
package cache

import (
	"context"
	"time"
)

// Cache entry lifetimes.
const (
	// TTLLot is how long a solved lot stays cached. Solves are pure, so this
	// only bounds disk and memory use.
	TTLLot = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LotKey keys a solved lot by the hash of its solve request.
	LotKey(requestHash string) string

	// ArtifactKey keys a rendered artifact by the hash of the lot it was
	// rendered from and its render options.
	ArtifactKey(lotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  int     `json:"width,omitempty"`
	Labels bool    `json:"labels,omitempty"`
	Skirt  bool    `json:"skirt,omitempty"`
	Edges  bool    `json:"edges,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Reach  float64 `json:"reach,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LotKey returns "lot:<requestHash>".
func (DefaultKeyer) LotKey(requestHash string) string {
	return "lot:" + requestHash
}

// ArtifactKey returns "artifact:" followed by a hash of the lot hash and
// options.
func (DefaultKeyer) ArtifactKey(lotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", lotHash, opts)
}
