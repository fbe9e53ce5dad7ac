// Package storage is the client's durable storage: a small key/value table
// in a sqlite database under the user's config directory. It plays the role
// browser localStorage plays for the web client: tokens and the persisted
// subset of each store survive restarts through it.
//
// Access is synchronous and unguarded; the last writer wins.
package storage

import "context"

// Repository is the raw key/value surface over the metadata table.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
