// Package revision tracks a counter per storage key. The store bumps a key's
// revision on every Put and Delete and stamps batch frames with the revisions
// they were built from; a batch whose stamps no longer match is stale.
package revision

import "context"

// Tracker abstracts where revisions live. Missing keys are revision 0.
type Tracker interface {
	// Current returns the revision of every requested key.
	Current(ctx context.Context, keys []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new revision.
	Bump(ctx context.Context, key string) (uint64, error)
	Close(ctx context.Context) error
}
