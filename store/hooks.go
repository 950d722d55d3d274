package store

// Hooks are callbacks for high-signal events. Implementations must be cheap
// and non-blocking; the store calls them inline.
type Hooks interface {
	// A single entry was deleted on read.
	// reason is one of "corrupt", "oversized", "value_decode".
	SelfHeal(namespace, storageKey, reason string)

	// A batch entry was discarded and the read fell back to singles.
	// reason is one of "corrupt", "oversized", "stale", "revision_error", "value_decode".
	BatchRejected(namespace string, requested int, reason string)

	// The provider returned ok=false on Set. members is 1 for a single entry
	// and the member count for a batch.
	ProviderSetRejected(namespace, storageKey string, members int)

	// Reading or bumping revisions failed. count is the number of keys involved.
	RevisionError(count int, err error)

	// Both the revision bump and the provider delete failed during Delete.
	DeleteOutage(key string, bumpErr, delErr error)

	// Batches are enabled while revisions are tracked in-process only.
	LocalRevisionsWithBatch()
}

type NopHooks struct{}

func (NopHooks) SelfHeal(string, string, string)         {}
func (NopHooks) BatchRejected(string, int, string)       {}
func (NopHooks) ProviderSetRejected(string, string, int) {}
func (NopHooks) RevisionError(int, error)                {}
func (NopHooks) DeleteOutage(string, error, error)       {}
func (NopHooks) LocalRevisionsWithBatch()                {}
