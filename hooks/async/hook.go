// Package asynchook moves store.Hooks calls onto a bounded queue served by
// worker goroutines. Events are dropped when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery:    10, // ~every 10th self-heal
//	    BatchRejectEvery: 1,
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	s, _ := store.New[Manifest](store.Options[Manifest]{
//	    Namespace: "app:prod:manifest",
//	    Provider:  provider,
//	    Codec:     codec.NewBinary[Manifest](binser.Options{}),
//	    Revisions: revision.NewRedis(rdb, "app:prod:manifest", 24*time.Hour),
//	    Hooks:     hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/binser/store"
)

type Hooks struct {
	inner   store.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(inner store.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events raised after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) SelfHeal(ns, k, r string) { h.try(func() { h.inner.SelfHeal(ns, k, r) }) }
func (h *Hooks) LocalRevisionsWithBatch() {
	h.try(func() { h.inner.LocalRevisionsWithBatch() })
}
func (h *Hooks) BatchRejected(ns string, n int, r string) {
	h.try(func() { h.inner.BatchRejected(ns, n, r) })
}
func (h *Hooks) ProviderSetRejected(ns, k string, members int) {
	h.try(func() { h.inner.ProviderSetRejected(ns, k, members) })
}
func (h *Hooks) RevisionError(n int, err error) {
	h.try(func() { h.inner.RevisionError(n, err) })
}
func (h *Hooks) DeleteOutage(k string, be, de error) {
	h.try(func() { h.inner.DeleteOutage(k, be, de) })
}
