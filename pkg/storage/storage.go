// Package storage holds the cart persistence collaborator. Writes are
// best-effort: the cart keeps working when the backend is down, it just
// stops surviving restarts.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// CartStorage persists one serialized cart under one key.
type CartStorage interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	// Purge removes the stored value, used when a read produced data that
	// fails validation (treat-as-corrupt-and-discard).
	Purge(ctx context.Context) error
	Available() bool
	Close() error
}
