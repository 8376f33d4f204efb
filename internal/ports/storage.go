package ports

import "context"

// LocalStorage is a namespaced key-value store for serialized snapshots.
// It plays the role a browser's local storage plays for a web client.
type LocalStorage interface {
	// Get returns the value stored under namespace.
	// Returns (nil, false, nil) if nothing has been stored yet.
	Get(ctx context.Context, namespace string) ([]byte, bool, error)

	// Set replaces the value stored under namespace.
	// Implementations must not leave a partially written value behind.
	Set(ctx context.Context, namespace string, value []byte) error

	// Remove deletes the value stored under namespace. Removing an absent
	// namespace is not an error.
	Remove(ctx context.Context, namespace string) error
}
