package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

func (s *Store) CreateItem(ctx context.Context, item *ledger.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO items (id, name, unit, purchase_price, opening_stock, reorder_level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Unit, item.PurchasePrice.String(),
		item.OpeningStock.String(), item.ReorderLevel.String(),
		item.CreatedAt.Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ledger.ErrDuplicateItem, item.ID)
	}
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// SetPurchasePrice updates the current cost used for inventory valuation.
func (s *Store) SetPurchasePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: purchase price %s is negative", ledger.ErrInvalidAmount, price)
	}
	res, err := s.writer.ExecContext(ctx,
		`UPDATE items SET purchase_price = ? WHERE id = ?`, price.String(), id)
	if err != nil {
		return fmt.Errorf("update purchase price: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update purchase price: %w", err)
	}
	if n == 0 {
		return ledger.ErrItemNotFound
	}
	return nil
}

func (s *Store) GetItem(ctx context.Context, id string) (*ledger.Item, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, name, unit, purchase_price, opening_stock, reorder_level, created_at FROM items WHERE id = ?`, id)

	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]ledger.Item, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, name, unit, purchase_price, opening_stock, reorder_level, created_at FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []ledger.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanItem(scan func(dest ...any) error) (*ledger.Item, error) {
	var item ledger.Item
	var price, stock, reorder, createdAt string
	if err := scan(&item.ID, &item.Name, &item.Unit, &price, &stock, &reorder, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}

	var err error
	if item.PurchasePrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("item %s purchase_price %q: %w", item.ID, price, err)
	}
	if item.OpeningStock, err = decimal.NewFromString(stock); err != nil {
		return nil, fmt.Errorf("item %s opening_stock %q: %w", item.ID, stock, err)
	}
	if item.ReorderLevel, err = decimal.NewFromString(reorder); err != nil {
		return nil, fmt.Errorf("item %s reorder_level %q: %w", item.ID, reorder, err)
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &item, nil
}
