package port

import (
	"context"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

// StockDetailReader is implemented by backends that keep per-item rows
// with a version and timestamps.
type StockDetailReader interface {
	// GetInventory returns nil and no error when itemID is not stored.
	GetInventory(ctx context.Context, itemID string) (*domain.Inventory, error)
}
