package storage

import "context"

// KeyValueStore is the durable key-value collaborator used for cart
// persistence. Get reports absence through the boolean, not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
