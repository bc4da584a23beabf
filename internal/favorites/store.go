package favorites

import (
	"context"
	"errors"
)

// ErrPersistence wraps any storage failure. Callers report it and keep
// the session alive; the in-memory set never diverges from disk.
var ErrPersistence = errors.New("favorites persistence failed")

// Store is the durable set of favorite product IDs. Add and Remove are
// idempotent and persist synchronously before returning.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
