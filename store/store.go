package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/codec"
	"github.com/unkn0wn-root/binser/internal/util"
	"github.com/unkn0wn-root/binser/internal/wire"
	"github.com/unkn0wn-root/binser/provider"
	"github.com/unkn0wn-root/binser/revision"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultPruneEvery   = time.Hour
	defaultRevRetention = 30 * 24 * time.Hour
)

type store[T any] struct {
	ns       string
	provider provider.Provider
	codec    codec.Codec[T]
	log      binser.Logger
	hooks    Hooks
	revs     revision.Tracker
	ownRevs  bool

	enabled        bool
	batchEnabled   bool
	defaultTTL     time.Duration
	batchTTL       time.Duration
	maxEntry       int
	computeSetCost SetCostFunc
}

func newStore[T any](opts Options[T]) (*store[T], error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.Codec == nil {
		return nil, ErrNoCodec
	}
	if opts.Namespace == "" {
		return nil, ErrNoNamespace
	}

	s := &store[T]{
		ns:           opts.Namespace,
		provider:     opts.Provider,
		codec:        opts.Codec,
		enabled:      !opts.Disabled,
		batchEnabled: !opts.DisableBatch,
		maxEntry:     opts.MaxEntrySize,
	}

	s.log = coalesce[binser.Logger](opts.Logger, binser.NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	s.batchTTL = coalesce(opts.BatchTTL, defaultTTL)

	if opts.ComputeSetCost != nil {
		s.computeSetCost = opts.ComputeSetCost
	} else {
		s.computeSetCost = func(string, []byte, bool, int) int64 { return 1 }
	}

	if opts.Revisions != nil {
		s.revs = opts.Revisions
	} else {
		s.revs = revision.NewLocal(
			coalesce(opts.PruneInterval, defaultPruneEvery),
			coalesce(opts.RevRetention, defaultRevRetention),
		)
		s.ownRevs = true
		if s.batchEnabled {
			s.hooks.LocalRevisionsWithBatch()
			s.log.Warn("batches enabled with in-process revisions; other replicas will not see member changes",
				binser.Fields{"ns": s.ns})
		}
	}
	return s, nil
}

func (s *store[T]) Enabled() bool { return s.enabled }

func (s *store[T]) Close(ctx context.Context) error {
	if s.ownRevs {
		_ = s.revs.Close(ctx)
	}
	return s.provider.Close(ctx)
}

func (s *store[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	if !s.enabled {
		return zero, false, nil
	}
	sk := util.EntryKey(s.ns, key)
	raw, ok, err := s.provider.Get(ctx, sk)
	if err != nil || !ok {
		return zero, false, err
	}
	if s.tooLarge(raw) {
		s.heal(ctx, sk, "oversized")
		return zero, false, nil
	}
	payload, err := wire.DecodeSingle(raw)
	if err != nil {
		s.heal(ctx, sk, "corrupt")
		return zero, false, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.heal(ctx, sk, "value_decode")
		return zero, false, nil
	}
	return v, true, nil
}

func (s *store[T]) Put(ctx context.Context, key string, value T, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	frame, err := s.encodeSingle(value)
	if err != nil {
		return err
	}
	_, err = s.putFrame(ctx, util.EntryKey(s.ns, key), frame, coalesce(ttl, s.defaultTTL))
	return err
}

func (s *store[T]) Delete(ctx context.Context, key string) error {
	if !s.enabled {
		return nil
	}
	sk := util.EntryKey(s.ns, key)
	_, bumpErr := s.revs.Bump(ctx, sk)
	delErr := s.provider.Del(ctx, sk)

	switch {
	case bumpErr != nil && delErr != nil:
		s.hooks.DeleteOutage(key, bumpErr, delErr)
		s.log.Error("delete failed", binser.Fields{"key": key, "bumpErr": bumpErr, "delErr": delErr})
		return &DeleteError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		s.hooks.RevisionError(1, bumpErr)
		s.log.Warn("revision bump failed on delete", binser.Fields{"key": key, "err": bumpErr})
	case delErr != nil:
		return delErr
	}
	return nil
}

func (s *store[T]) GetMany(ctx context.Context, keys []string) (map[string]T, []string, error) {
	out := make(map[string]T, len(keys))
	var missing []string
	var errs []error
	for _, k := range uniq(keys) {
		v, ok, err := s.Get(ctx, k)
		if err != nil {
			errs = append(errs, err)
		}
		if ok {
			out[k] = v
		} else {
			missing = append(missing, k)
		}
	}
	return out, missing, errors.Join(errs...)
}

func (s *store[T]) PutMany(ctx context.Context, items map[string]T, ttl time.Duration) error {
	var errs []error
	for _, k := range sortedKeys(items) {
		if err := s.Put(ctx, k, items[k], ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *store[T]) PutBatch(ctx context.Context, items map[string]T, ttl time.Duration) error {
	if !s.enabled || len(items) == 0 {
		return nil
	}
	if !s.batchEnabled {
		return s.PutMany(ctx, items, 0)
	}

	keys := sortedKeys(items)
	for _, k := range keys {
		if err := wire.CheckKey(k); err != nil {
			return fmt.Errorf("batch key %q: %w", k, err)
		}
	}
	// encode and size-check everything before the first write, so a
	// rejected batch leaves the provider and revisions untouched
	payloads := make([][]byte, len(keys))
	singles := make([][]byte, len(keys))
	for i, k := range keys {
		p, err := s.codec.Encode(items[k])
		if err != nil {
			return err
		}
		frame, err := wire.EncodeSingle(p)
		if err != nil {
			return err
		}
		if err := s.checkSize(frame); err != nil {
			return err
		}
		payloads[i], singles[i] = p, frame
	}

	// seed singles first; the revision each Put produced stamps its batch
	// member, so any later change to a member makes the batch stale
	batch := make([]wire.BatchItem, len(keys))
	for i, k := range keys {
		rev, err := s.putFrame(ctx, util.EntryKey(s.ns, k), singles[i], s.defaultTTL)
		if err != nil {
			return err
		}
		batch[i] = wire.BatchItem{Key: k, Rev: rev, Payload: payloads[i]}
	}

	frame, err := wire.EncodeBatch(batch)
	if err != nil {
		return err
	}
	bk := util.BatchKeySorted(s.ns, keys)
	if s.tooLarge(frame) {
		s.log.Debug("batch exceeds max entry size; singles only",
			binser.Fields{"batchKey": bk, "size": len(frame), "members": len(keys)})
		return nil
	}
	ok, err := s.provider.Set(ctx, bk, frame, s.computeSetCost(bk, frame, true, len(keys)), coalesce(ttl, s.batchTTL))
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.ProviderSetRejected(s.ns, bk, len(keys))
		s.log.Debug("batch set rejected by provider", binser.Fields{"batchKey": bk})
	}
	return nil
}

func (s *store[T]) GetBatch(ctx context.Context, keys []string) (map[string]T, []string, error) {
	if !s.enabled {
		return map[string]T{}, uniq(keys), nil
	}
	if len(keys) == 0 {
		return map[string]T{}, nil, nil
	}
	if !s.batchEnabled {
		return s.GetMany(ctx, keys)
	}

	members := uniq(keys)
	slices.Sort(members)
	bk := util.BatchKeySorted(s.ns, members)
	raw, ok, err := s.provider.Get(ctx, bk)
	if err == nil && ok {
		if vals, ok := s.readBatch(ctx, bk, members, raw); ok {
			return vals, nil, nil
		}
	}
	return s.GetMany(ctx, keys)
}

func (s *store[T]) readBatch(ctx context.Context, bk string, members []string, raw []byte) (map[string]T, bool) {
	reject := func(reason string, drop bool) (map[string]T, bool) {
		if drop {
			_ = s.provider.Del(ctx, bk)
		}
		s.hooks.BatchRejected(s.ns, len(members), reason)
		s.log.Debug("batch rejected", binser.Fields{"batchKey": bk, "reason": reason})
		return nil, false
	}

	if s.tooLarge(raw) {
		return reject("oversized", true)
	}
	items, err := wire.DecodeBatch(raw)
	if err != nil {
		return reject("corrupt", true)
	}

	storageKeys := make([]string, len(members))
	for i, k := range members {
		storageKeys[i] = util.EntryKey(s.ns, k)
	}
	revs, err := s.revs.Current(ctx, storageKeys)
	if err != nil {
		s.hooks.RevisionError(len(storageKeys), err)
		return reject("revision_error", false)
	}

	byKey := make(map[string]wire.BatchItem, len(items))
	for _, it := range items {
		byKey[it.Key] = it
	}
	for i, k := range members {
		it, ok := byKey[k]
		if !ok || it.Rev != revs[storageKeys[i]] {
			return reject("stale", true)
		}
	}

	out := make(map[string]T, len(members))
	for _, k := range members {
		v, err := s.codec.Decode(byKey[k].Payload)
		if err != nil {
			return reject("value_decode", true)
		}
		out[k] = v
	}
	return out, true
}

func (s *store[T]) encodeSingle(value T) ([]byte, error) {
	payload, err := s.codec.Encode(value)
	if err != nil {
		return nil, err
	}
	frame, err := wire.EncodeSingle(payload)
	if err != nil {
		return nil, err
	}
	return frame, s.checkSize(frame)
}

// putFrame bumps the key's revision, then writes the frame. It returns the
// revision the frame was written under.
func (s *store[T]) putFrame(ctx context.Context, sk string, frame []byte, ttl time.Duration) (uint64, error) {
	rev, err := s.revs.Bump(ctx, sk)
	if err != nil {
		s.hooks.RevisionError(1, err)
		return 0, err
	}
	ok, err := s.provider.Set(ctx, sk, frame, s.computeSetCost(sk, frame, false, 1), ttl)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.hooks.ProviderSetRejected(s.ns, sk, 1)
		s.log.Debug("set rejected by provider", binser.Fields{"key": sk})
	}
	return rev, nil
}

func (s *store[T]) heal(ctx context.Context, sk, reason string) {
	_ = s.provider.Del(ctx, sk)
	s.hooks.SelfHeal(s.ns, sk, reason)
	s.log.Debug("self-heal", binser.Fields{"key": sk, "reason": reason})
}

func (s *store[T]) tooLarge(b []byte) bool {
	return s.maxEntry > 0 && len(b) > s.maxEntry
}

func (s *store[T]) checkSize(frame []byte) error {
	if s.tooLarge(frame) {
		return &binser.LengthError{What: "entry", Len: len(frame), Max: s.maxEntry}
	}
	return nil
}

// uniq drops duplicates and keeps first-seen order.
func uniq(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
