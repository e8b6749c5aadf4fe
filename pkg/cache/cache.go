// Package cache provides pluggable result caching for expensive pipeline
// stages. Placement and full layout results are keyed by a hash of the
// design plus the options that shaped them, so a rerun with identical
// inputs skips straight to the cached artifact.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Placements age out faster than finished layouts because
// they are cheap to recompute relative to a full route-and-check run.
const (
	PlacementTTL = 24 * time.Hour
	LayoutTTL    = 7 * 24 * time.Hour
)

// Cache is the storage backend contract. Implementations: FileCache for
// local CLI runs, RedisCache for shared environments, NullCache to
// disable caching.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlacementKeyOpts are the inputs that change a placement result.
type PlacementKeyOpts struct {
	Method     string
	Iterations int
	Seed       int64
}

// LayoutKeyOpts are the inputs that change a routed layout.
type LayoutKeyOpts struct {
	Method     string
	Iterations int
	Seed       int64
	Resolution float64
	Layers     int
	RulesHash  string
}

// Keyer derives cache keys for pipeline stages from a design hash and the
// options that influenced the stage.
type Keyer interface {
	PlacementKey(designHash string, opts PlacementKeyOpts) string
	LayoutKey(designHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes the design hash together with the stage options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlacementKey generates a key for a cached placement.
func (k *DefaultKeyer) PlacementKey(designHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", designHash, opts)
}

// LayoutKey generates a key for a cached layout.
func (k *DefaultKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", designHash, opts)
}
