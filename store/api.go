package store

import (
	"context"
	"time"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/codec"
	"github.com/unkn0wn-root/binser/provider"
	"github.com/unkn0wn-root/binser/revision"
)

type SetCostFunc func(key string, raw []byte, isBatch bool, count int) int64

// Store is a provider-agnostic keyed record store. T is the caller's record
// type; bytes are produced by a pluggable codec.Codec[T] and framed before
// they reach the provider.
type Store[T any] interface {
	Enabled() bool
	Close(context.Context) error

	// Single
	Get(ctx context.Context, key string) (v T, ok bool, err error)
	Put(ctx context.Context, key string, value T, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Many reads and writes singles one by one.
	GetMany(ctx context.Context, keys []string) (values map[string]T, missing []string, err error)
	PutMany(ctx context.Context, items map[string]T, ttl time.Duration) error

	// Batch stores the whole set under one entry and seeds singles. GetBatch
	// serves the set from that entry while no member changed since, and falls
	// back to GetMany otherwise.
	PutBatch(ctx context.Context, items map[string]T, ttl time.Duration) error
	GetBatch(ctx context.Context, keys []string) (values map[string]T, missing []string, err error)
}

// Options tune a Store. Namespace, Provider and Codec are required.
type Options[T any] struct {
	Namespace string // isolates keys, e.g. "manifest", "peer"
	Provider  provider.Provider
	Codec     codec.Codec[T]

	Logger         binser.Logger    // nil => binser.NopLogger
	Hooks          Hooks            // nil => NopHooks
	Revisions      revision.Tracker // nil => in-process revision.Local
	DefaultTTL     time.Duration    // singles; 0 => 10m
	BatchTTL       time.Duration    // batches; 0 => 10m
	PruneInterval  time.Duration    // local revisions; 0 => 1h
	RevRetention   time.Duration    // local revisions; 0 => 30d
	MaxEntrySize   int              // framed bytes; 0 => unlimited
	ComputeSetCost SetCostFunc      // default 1
	Disabled       bool
	DisableBatch   bool
}

func New[T any](opts Options[T]) (Store[T], error) {
	return newStore[T](opts)
}
