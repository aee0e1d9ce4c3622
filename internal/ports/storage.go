package ports

import "context"

// KeyValueStore is the durable per-user store used to persist the explicit
// theme choice. Get reports found=false for missing keys without an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
