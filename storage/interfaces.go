package storage

import (
	"context"
)

// KeyValueStore persists opaque values under string keys.
// Implementations must be thread-safe and support concurrent access.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ValidateKey returns ErrInvalidKey for an empty key.
func ValidateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}
