// Package storage is the durable medium boundary. A Medium holds one keyed
// collection as a full snapshot; the record stores read it on load and write
// it back after every successful mutation.
package storage

import (
	"context"
	"errors"
)

// ErrStorage marks a durable medium failure. It is distinct from an empty
// collection: a Medium must never report corruption as an empty load.
var ErrStorage = errors.New("storage failure")

// Medium persists one collection of records. Save followed by Load in the
// same process observes the saved state; Load before any Save yields either
// an empty collection or pre-seeded content.
type Medium[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}
