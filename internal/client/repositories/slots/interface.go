// Package slots persists small named values on the device: the identity
// token and the cached tribute set each live in one slot.
package slots

import "context"

// Repository is a durable key/value store of named slots.
type Repository interface {
	// Get returns the slot value, or nil if the slot does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the slot value, replacing any previous contents.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a single slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every slot.
	Clear(ctx context.Context) error
}
