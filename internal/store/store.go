// Package store provides the namespaced record store backing every
// collection on the site: a flat key space of JSON blobs, one key per
// collection. Callers own the shape of each blob; the store only moves
// bytes. A value that fails to decode on the caller's side is treated
// the same as an absent one so services can fall back to their seeds.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// RecordStore is the single persistence surface of the application.
// Read-modify-write of a collection is not atomic at this level; the
// owning service serializes its own writers.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
