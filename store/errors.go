package store

import (
	"errors"
	"fmt"
)

var (
	ErrNoProvider  = errors.New("store: provider is required")
	ErrNoCodec     = errors.New("store: codec is required")
	ErrNoNamespace = errors.New("store: namespace is required")
)

// DeleteError is returned when a Delete could neither bump the key's revision
// nor remove the entry.
type DeleteError struct {
	Key     string
	BumpErr error
	DelErr  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("store: delete %q failed: bump: %v; del: %v", e.Key, e.BumpErr, e.DelErr)
}

func (e *DeleteError) Unwrap() []error { return []error{e.BumpErr, e.DelErr} }
