package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/stockkeeper/internal/core/domain"
	"github.com/rl1809/stockkeeper/internal/port"
)

// item_id compares byte for byte: "apple" and "Apple", "café" and "cafe"
// are distinct items.
const createInventoryTable = `
CREATE TABLE IF NOT EXISTS inventory (
	item_id    VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL PRIMARY KEY,
	stock      INT          NOT NULL,
	version    INT          NOT NULL DEFAULT 1,
	created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Tables created before item_id was binary keep the server's default
// collation under CREATE TABLE IF NOT EXISTS.
const binaryItemID = `
ALTER TABLE inventory
MODIFY item_id VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL`

var (
	_ port.SnapshotRepository = (*MySQLAdapter)(nil)
	_ port.StockDetailReader  = (*MySQLAdapter)(nil)
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createInventoryTable); err != nil {
		return fmt.Errorf("create inventory table: %w", err)
	}
	if _, err := m.db.ExecContext(ctx, binaryItemID); err != nil {
		return fmt.Errorf("migrate inventory item_id: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Load(ctx context.Context) (map[string]int, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT item_id, stock FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]int)
	for rows.Next() {
		var item string
		var qty int
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		if item == "" {
			return nil, fmt.Errorf("%w: empty item name in inventory table", domain.ErrFormat)
		}
		stock[item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return stock, nil
}

// Save upserts every item, bumping its version, and drops rows for items
// no longer stocked. It all happens in one transaction.
func (m *MySQLAdapter) Save(ctx context.Context, stock map[string]int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	items := make([]interface{}, 0, len(stock))
	for item, qty := range stock {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inventory (item_id, stock, version, created_at, updated_at)
			VALUES (?, ?, 1, NOW(), NOW())
			ON DUPLICATE KEY UPDATE stock = VALUES(stock), version = version + 1, updated_at = NOW()`,
			item, qty,
		)
		if err != nil {
			return fmt.Errorf("upsert %q: %w", item, err)
		}
		items = append(items, item)
	}

	query := `DELETE FROM inventory`
	if len(items) > 0 {
		query += ` WHERE item_id NOT IN (?` + strings.Repeat(", ?", len(items)-1) + `)`
	}
	if _, err := tx.ExecContext(ctx, query, items...); err != nil {
		return fmt.Errorf("prune inventory: %w", err)
	}

	return tx.Commit()
}

// GetInventory returns the stored row for itemID, or nil when absent.
func (m *MySQLAdapter) GetInventory(ctx context.Context, itemID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := m.db.QueryRowContext(ctx, `
		SELECT item_id, stock, version, created_at, updated_at
		FROM inventory WHERE item_id = ?`, itemID,
	).Scan(&inv.ItemID, &inv.Quantity, &inv.Version, &inv.CreatedAt, &inv.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return &inv, nil
}
