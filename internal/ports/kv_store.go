package ports

import "context"

// KeyValueStore is a durable on-device string store.
// Get returns ok=false when the key does not exist.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Remove(ctx context.Context, key string) error
	Set(ctx context.Context, key, value string) error
}
