package revision

import (
	"context"
	"sync"
	"time"
)

type localRev struct {
	rev     uint64
	touched time.Time
}

// Local keeps revisions in-process. With a positive retention it prunes keys
// untouched for longer than that; retention must outlive any batch TTL or a
// pruned key could make an old batch look fresh again.
type Local struct {
	mu   sync.RWMutex
	revs map[string]localRev

	retention time.Duration
	stop      chan struct{}
	done      sync.WaitGroup
	closeOnce sync.Once
}

var _ Tracker = (*Local)(nil)

func NewLocal(pruneEvery, retention time.Duration) *Local {
	l := &Local{revs: make(map[string]localRev), retention: retention}
	if pruneEvery > 0 && retention > 0 {
		l.stop = make(chan struct{})
		l.done.Add(1)
		go l.janitor(pruneEvery)
	}
	return l
}

func (l *Local) janitor(every time.Duration) {
	defer l.done.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			l.Prune(now.Add(-l.retention))
		case <-l.stop:
			return
		}
	}
}

func (l *Local) Current(_ context.Context, keys []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(keys))
	l.mu.RLock()
	for _, k := range keys {
		out[k] = l.revs[k].rev
	}
	l.mu.RUnlock()
	return out, nil
}

func (l *Local) Bump(_ context.Context, key string) (uint64, error) {
	now := time.Now()
	l.mu.Lock()
	r := l.revs[key]
	r.rev++
	r.touched = now
	l.revs[key] = r
	l.mu.Unlock()
	return r.rev, nil
}

// Prune forgets keys last bumped before cutoff.
func (l *Local) Prune(cutoff time.Time) {
	l.mu.Lock()
	for k, r := range l.revs {
		if r.touched.Before(cutoff) {
			delete(l.revs, k)
		}
	}
	l.mu.Unlock()
}

func (l *Local) Close(context.Context) error {
	l.closeOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
			l.done.Wait()
		}
	})
	return nil
}
