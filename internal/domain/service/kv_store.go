package service

import (
	"context"

	"gahana/internal/errors"
)

// ErrKeyNotFound is returned by KVStore.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is local persistent key-value storage. Values are JSON documents.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete succeeds when the key does not exist.
	Delete(ctx context.Context, key string) error
	Close() error
}
