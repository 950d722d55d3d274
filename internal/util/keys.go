package util

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/unkn0wn-root/binser"
)

// EntryKey isolates a caller key inside a namespace.
func EntryKey(ns, key string) string {
	return "entry:" + ns + ":" + key
}

// BatchKey returns a deterministic key for a set of members, independent of
// their order.
func BatchKey(ns string, keys []string) string {
	s := slices.Clone(keys)
	slices.Sort(s)
	return BatchKeySorted(ns, s)
}

// BatchKeySorted is BatchKey for keys already sorted ascending. Members are
// hashed length-prefixed so {"a,b"} and {"a","b"} never collide.
func BatchKeySorted(ns string, sorted []string) string {
	h := sha256.New()
	// a hash never fails to write; a member longer than a string field can
	// hold falls back to hashing its raw bytes
	w := binser.NewWriter(h)
	_ = w.WriteCount(len(sorted))
	for _, k := range sorted {
		if err := w.WriteString(k); err != nil {
			_ = w.WriteBytes([]byte(k))
		}
	}
	sum := h.Sum(nil)
	return "batch:" + ns + ":" + hex.EncodeToString(sum[:8])
}
