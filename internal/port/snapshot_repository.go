package port

import "context"

type SnapshotRepository interface {
	// Load returns the full item->quantity mapping. A backend with nothing
	// stored yet returns an empty mapping and no error.
	Load(ctx context.Context) (map[string]int, error)

	// Save replaces everything the backend holds with stock
	Save(ctx context.Context, stock map[string]int) error
}
