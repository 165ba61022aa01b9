package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/core/domain"
	"github.com/rl1809/stockkeeper/internal/port"
)

// InventoryService owns one item->quantity mapping. It does no locking;
// callers sharing it between goroutines must serialize access.
type InventoryService struct {
	stock  map[string]int
	logger *zap.Logger
	now    func() time.Time
}

func NewInventoryService(logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		stock:  make(map[string]int),
		logger: logger,
		now:    time.Now,
	}
}

// Add increases the quantity of item by qty, creating the entry if needed.
// A non-nil journal receives a timestamped line for the operation.
func (s *InventoryService) Add(item string, qty int, journal *domain.Journal) error {
	if err := domain.ValidateItem(item); err != nil {
		return err
	}
	if err := domain.ValidateQuantity(qty); err != nil {
		return err
	}

	prev := s.stock[item]
	s.stock[item] = prev + qty

	journal.Record(s.now(), "Added %d of %s", qty, item)
	s.logger.Info("added stock",
		zap.String("item", item),
		zap.Int("qty", qty),
		zap.Int("previous", prev),
	)
	return nil
}

// Remove decreases the quantity of item by qty. When qty covers the whole
// remaining stock the item is deleted rather than kept at zero or below.
func (s *InventoryService) Remove(item string, qty int) error {
	if err := domain.ValidateItem(item); err != nil {
		return err
	}
	if err := domain.ValidateQuantity(qty); err != nil {
		return err
	}

	current, ok := s.stock[item]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, item)
	}

	if qty >= current {
		delete(s.stock, item)
		s.logger.Info("removed item",
			zap.String("item", item),
			zap.Int("requested", qty),
			zap.Int("had", current),
		)
		return nil
	}

	s.stock[item] = current - qty
	s.logger.Info("decreased stock",
		zap.String("item", item),
		zap.Int("qty", qty),
		zap.Int("remaining", s.stock[item]),
	)
	return nil
}

// Quantity returns the stock of item, or 0 when it is not stocked.
func (s *InventoryService) Quantity(item string) (int, error) {
	if err := domain.ValidateItem(item); err != nil {
		return 0, err
	}
	return s.stock[item], nil
}

// LowStock returns, sorted, the items whose quantity is below threshold.
func (s *InventoryService) LowStock(threshold int) []string {
	items := make([]string, 0)
	for item, qty := range s.stock {
		if qty < threshold {
			items = append(items, item)
		}
	}
	sort.Strings(items)
	return items
}

// Report lists every item in ascending key order.
func (s *InventoryService) Report() []domain.StockLevel {
	items := make([]string, 0, len(s.stock))
	for item := range s.stock {
		items = append(items, item)
	}
	sort.Strings(items)

	levels := make([]domain.StockLevel, 0, len(items))
	for _, item := range items {
		levels = append(levels, domain.StockLevel{Item: item, Quantity: s.stock[item]})
	}
	return levels
}

func (s *InventoryService) Snapshot() map[string]int {
	out := make(map[string]int, len(s.stock))
	for item, qty := range s.stock {
		out[item] = qty
	}
	return out
}

func (s *InventoryService) Len() int {
	return len(s.stock)
}

// Load replaces the whole inventory with what repo holds. On error the
// current contents are left untouched.
func (s *InventoryService) Load(ctx context.Context, repo port.SnapshotRepository) error {
	data, err := repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load inventory", zap.Error(err))
		return fmt.Errorf("load inventory: %w", err)
	}

	stock := make(map[string]int, len(data))
	for item, qty := range data {
		stock[item] = qty
	}
	s.stock = stock

	s.logger.Info("loaded inventory", zap.Int("items", len(stock)))
	return nil
}

// Save writes the whole inventory to repo.
func (s *InventoryService) Save(ctx context.Context, repo port.SnapshotRepository) error {
	if err := repo.Save(ctx, s.Snapshot()); err != nil {
		s.logger.Error("failed to save inventory", zap.Error(err))
		return fmt.Errorf("save inventory: %w", err)
	}

	s.logger.Info("saved inventory", zap.Int("items", len(s.stock)))
	return nil
}
