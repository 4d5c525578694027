package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a stock-keeping unit. The on-hand quantity is never stored; it is
// always derived from opening stock plus the movement history.
type Item struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Validate checks item invariants.
func (it *Item) Validate() error {
	if it.ID == "" {
		return ErrInvalidItemID
	}
	if it.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if it.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase price %s is negative", ErrInvalidAmount, it.PurchasePrice)
	}
	return nil
}
