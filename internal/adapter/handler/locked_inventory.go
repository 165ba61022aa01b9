package handler

import (
	"context"
	"sync"

	"github.com/rl1809/stockkeeper/internal/core/domain"
	"github.com/rl1809/stockkeeper/internal/core/service"
	"github.com/rl1809/stockkeeper/internal/port"
)

// LockedInventory serializes access to one InventoryService so that the
// HTTP and gRPC servers can share it. Adds made through it are recorded
// in a journal.
type LockedInventory struct {
	mu      sync.Mutex
	svc     *service.InventoryService
	repo    port.SnapshotRepository
	journal *domain.Journal
}

func NewLockedInventory(svc *service.InventoryService, repo port.SnapshotRepository) *LockedInventory {
	return &LockedInventory{
		svc:     svc,
		repo:    repo,
		journal: domain.NewJournal(),
	}
}

// Add returns the item's quantity after the addition.
func (l *LockedInventory) Add(item string, qty int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.svc.Add(item, qty, l.journal); err != nil {
		return 0, err
	}
	return l.svc.Quantity(item)
}

// Remove returns what is left of the item, 0 once it has been deleted.
func (l *LockedInventory) Remove(item string, qty int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.svc.Remove(item, qty); err != nil {
		return 0, err
	}
	return l.svc.Quantity(item)
}

func (l *LockedInventory) Quantity(item string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.svc.Quantity(item)
}

func (l *LockedInventory) LowStock(threshold int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.svc.LowStock(threshold)
}

func (l *LockedInventory) Report() []domain.StockLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.svc.Report()
}

func (l *LockedInventory) Journal() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.journal.Entries()
}

// Save persists the inventory and returns how many items were written.
func (l *LockedInventory) Save(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.svc.Save(ctx, l.repo); err != nil {
		return 0, err
	}
	return l.svc.Len(), nil
}
