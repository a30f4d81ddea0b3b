package interfaces

import "context"

// KeyValueStore is the durable backend behind every repository. Values are
// whole JSON documents; there are no partial updates.
type KeyValueStore interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
