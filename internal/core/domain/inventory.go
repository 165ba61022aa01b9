package domain

import "time"

// Inventory is a persisted stock row as the SQL backend stores it.
type Inventory struct {
	ItemID    string
	Quantity  int
	Version   int // bumped on every rewrite
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockLevel is one line of the inventory report.
type StockLevel struct {
	Item     string `json:"item" yaml:"item"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}
