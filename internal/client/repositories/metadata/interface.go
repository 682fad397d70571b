// Package metadata is the plain (unencrypted) key/value backend of the
// credential store, kept in the "metadata" table of a local SQLite file.
package metadata

import (
	"context"
)

// Repository is a string-keyed byte store.
//
// Get returns (nil, nil) for a missing key; Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
