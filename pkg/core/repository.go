package core

import "context"

// Repository defines the contract for persisting the registry document.
// Adhering to this interface keeps the registry independent of the
// underlying storage mechanism.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. creates the backing file).
	Initialize(ctx context.Context) error

	// Load reads the whole document, preserving category and entry order.
	Load(ctx context.Context) (Document, error)

	// SaveCategory replaces one category subtree.
	SaveCategory(ctx context.Context, c Category) error

	// SavePin replaces the pin record. A zero record removes it.
	SavePin(ctx context.Context, p PinRecord) error
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
