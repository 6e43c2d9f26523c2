// Package cache stores constructed cycles and verification results.
//
// Construction is O(n!) so repeated requests for the same order are served
// from a [Cache]. Backends:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: durable store for large orders
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that every backend agrees on them.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per artifact. Cycles never change for a given n.
const (
	TTLCycle   = 30 * 24 * time.Hour
	TTLControl = 30 * 24 * time.Hour
	TTLVerify  = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get returns (nil, false, nil) on a miss. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for each cached artifact.
type Keyer interface {
	// CycleKey identifies the universal cycle of order n.
	CycleKey(n int) string
	// ControlKey identifies the control sequence of order n.
	ControlKey(n int) string
	// VerifyKey identifies a verification of cycle under strategy.
	VerifyKey(n int, strategy string, cycle []int) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CycleKey returns "cycle:<n>".
func (DefaultKeyer) CycleKey(n int) string { return "cycle:" + itoa(n) }

// ControlKey returns "control:<n>".
func (DefaultKeyer) ControlKey(n int) string { return "control:" + itoa(n) }

// VerifyKey hashes the order, strategy and cycle contents.
func (DefaultKeyer) VerifyKey(n int, strategy string, cycle []int) string {
	return hashKey("verify", n, strategy, cycle)
}

var _ Keyer = DefaultKeyer{}
