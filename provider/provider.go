// Package provider defines the byte store underneath a binser store.
//
// Providers must be byte-transparent: Get returns exactly the bytes given to
// Set for that key. The store validates every frame it reads, so a provider
// that rewrites values only ever produces self-healed misses.
//
// The keyspaces "entry:<ns>:" and "batch:<ns>:" belong to the store. Foreign
// values written there are treated as corrupt and deleted.
package provider

import (
	"context"
	"time"
)

// Provider is a byte store with TTLs. Implementations must be safe for
// concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// Transport or backend failures return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for ttl (<= 0 means the provider's default). cost may
	// be ignored. ok=false reports a write dropped under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	Close(ctx context.Context) error
}
