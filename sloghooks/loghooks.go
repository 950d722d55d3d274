// Package sloghooks reports store.Hooks events through log/slog.
//
// Every event is counted per namespace and reason whether or not it is
// logged, so sampling only thins the log lines. Stats returns the counts.
// User keys are redacted; the storage kind ("entry" or "batch") and the
// namespace stay readable, and batch keys are already hashes so they are
// logged as-is.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"

	"github.com/unkn0wn-root/binser/store"
)

type Options struct {
	// Log every Nth event of that kind; 0/1 = log all.
	SelfHealEvery    uint64
	BatchRejectEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

// Count identifies a counter in Stats.
type Count struct {
	Event     string // "self_heal", "batch_rejected", ...
	Namespace string // empty for events without one
	Reason    string // self-heal and batch reject reasons; key kind for set rejects
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	mu     sync.Mutex
	counts map[Count]uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts, counts: make(map[Count]uint64)}
}

// Stats returns a snapshot of all event counts.
func (h *Hooks) Stats() map[Count]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[Count]uint64, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}

// bump counts the event and returns its running total.
func (h *Hooks) bump(c Count) uint64 {
	h.mu.Lock()
	h.counts[c]++
	n := h.counts[c]
	h.mu.Unlock()
	return n
}

func logNth(every, seen uint64) bool {
	return every <= 1 || seen%every == 0
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

// splitKey breaks a storage key of namespace ns into its kind and the part
// after "<kind>:<ns>:". Keys in any other layout have an empty kind.
func splitKey(ns, storageKey string) (kind, rest string) {
	for _, k := range [...]string{"entry", "batch"} {
		if rest, ok := strings.CutPrefix(storageKey, k+":"+ns+":"); ok {
			return k, rest
		}
	}
	return "", storageKey
}

func (h *Hooks) keyAttrs(kind, rest string) []any {
	switch kind {
	case "batch":
		return []any{"kind", kind, "key", rest}
	case "":
		return []any{"key", h.redact(rest)}
	}
	return []any{"kind", kind, "key", h.redact(rest)}
}

func (h *Hooks) SelfHeal(ns, storageKey, reason string) {
	seen := h.bump(Count{Event: "self_heal", Namespace: ns, Reason: reason})
	if h.l == nil || !logNth(h.opts.SelfHealEvery, seen) {
		return
	}
	args := append([]any{"ns", ns, "reason", reason, "seen", seen}, h.keyAttrs(splitKey(ns, storageKey))...)
	h.l.Debug("binser.self_heal", args...)
}

func (h *Hooks) BatchRejected(ns string, requested int, reason string) {
	seen := h.bump(Count{Event: "batch_rejected", Namespace: ns, Reason: reason})
	if h.l == nil || !logNth(h.opts.BatchRejectEvery, seen) {
		return
	}
	h.l.Info("binser.batch_rejected",
		"ns", ns,
		"requested", requested,
		"reason", reason,
		"seen", seen)
}

func (h *Hooks) ProviderSetRejected(ns, storageKey string, members int) {
	kind, rest := splitKey(ns, storageKey)
	seen := h.bump(Count{Event: "provider_set_rejected", Namespace: ns, Reason: kind})
	if h.l == nil {
		return
	}
	args := append([]any{"ns", ns, "members", members, "seen", seen}, h.keyAttrs(kind, rest)...)
	h.l.Warn("binser.provider_set_rejected", args...)
}

func (h *Hooks) RevisionError(count int, err error) {
	h.bump(Count{Event: "revision_error"})
	if h.l == nil {
		return
	}
	h.l.Warn("binser.revision_error",
		"count", count,
		"err", err)
}

func (h *Hooks) DeleteOutage(key string, bumpErr, delErr error) {
	h.bump(Count{Event: "delete_outage"})
	if h.l == nil {
		return
	}
	h.l.Error("binser.delete_outage",
		"key", h.redact(key),
		"bump_err", bumpErr,
		"del_err", delErr)
}

func (h *Hooks) LocalRevisionsWithBatch() {
	h.bump(Count{Event: "local_revisions_with_batch"})
	if h.l == nil {
		return
	}
	h.l.Warn("binser.local_revisions_with_batch",
		"detail", "batches enabled with in-process revisions; stale batches possible across replicas")
}
