package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// CreateTransaction appends one record to the history. There is no update
// and no delete: corrections are entered as new records (e.g. a return
// against an invoice), which is what keeps as-of reconstruction honest.
func (s *Store) CreateTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.Must(uuid.NewV7()).String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	if err := txn.Validate(); err != nil {
		return err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions
			(id, kind, date, subtotal, discount, tax, net, account_id, entity_type,
			 refund, settlement_id, branch, from_store, to_store, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, string(txn.Kind), txn.Date.Format(ledger.DateLayout),
		txn.Totals.Subtotal.String(), txn.Totals.Discount.String(),
		txn.Totals.Tax.String(), txn.Totals.Net.String(),
		txn.AccountID, string(txn.EntityType), boolToInt(txn.Refund),
		txn.SettlementID, txn.Branch, txn.FromStore, txn.ToStore,
		txn.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for i := range txn.Lines {
		txn.Lines[i].TransactionID = txn.ID
		line := &txn.Lines[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lines (transaction_id, item_id, account_id, quantity, unit_price, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			txn.ID, line.ItemID, line.AccountID,
			line.Quantity.String(), line.UnitPrice.String(), line.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, kind, date, subtotal, discount, tax, net, account_id, entity_type,
		        refund, settlement_id, branch, from_store, to_store, created_at
		 FROM transactions WHERE id = ?`, id)

	txn, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.linesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter TxnFilter) ([]ledger.Transaction, error) {
	query := `SELECT id, kind, date, subtotal, discount, tax, net, account_id, entity_type,
	                 refund, settlement_id, branch, from_store, to_store, created_at
	          FROM transactions WHERE 1=1`
	args := []any{}

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.AccountID != "" {
		query += ` AND (account_id = ? OR settlement_id = ?)`
		args = append(args, filter.AccountID, filter.AccountID)
	}
	if filter.Branch != "" {
		query += ` AND branch = ?`
		args = append(args, filter.Branch)
	}
	if filter.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += ` AND date <= ?`
		args = append(args, filter.DateTo)
	}

	// Same-date records have no business ordering; created_at only keeps
	// listings stable for display.
	query += ` ORDER BY date, created_at`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []ledger.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		lines, err := s.linesFor(ctx, txn.ID)
		if err != nil {
			return nil, err
		}
		txn.Lines = lines
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

func (s *Store) linesFor(ctx context.Context, txnID string) ([]ledger.LineEntry, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, transaction_id, item_id, account_id, quantity, unit_price, amount
		 FROM lines WHERE transaction_id = ? ORDER BY id`, txnID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.LineEntry
	for rows.Next() {
		var line ledger.LineEntry
		var qty, price, amount string
		if err := rows.Scan(&line.ID, &line.TransactionID, &line.ItemID, &line.AccountID, &qty, &price, &amount); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if line.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("line %d quantity %q: %w", line.ID, qty, err)
		}
		if line.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("line %d unit_price %q: %w", line.ID, price, err)
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("line %d amount %q: %w", line.ID, amount, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanTransaction(scan func(dest ...any) error) (*ledger.Transaction, error) {
	var txn ledger.Transaction
	var date, subtotal, discount, tax, net, createdAt string
	var refund int
	err := scan(&txn.ID, &txn.Kind, &date, &subtotal, &discount, &tax, &net,
		&txn.AccountID, &txn.EntityType, &refund, &txn.SettlementID,
		&txn.Branch, &txn.FromStore, &txn.ToStore, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	txn.Refund = refund == 1
	if txn.Date, err = time.Parse(ledger.DateLayout, date); err != nil {
		return nil, fmt.Errorf("transaction %s date %q: %w", txn.ID, date, err)
	}
	if txn.Totals.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("transaction %s subtotal %q: %w", txn.ID, subtotal, err)
	}
	if txn.Totals.Discount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("transaction %s discount %q: %w", txn.ID, discount, err)
	}
	if txn.Totals.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, fmt.Errorf("transaction %s tax %q: %w", txn.ID, tax, err)
	}
	if txn.Totals.Net, err = decimal.NewFromString(net); err != nil {
		return nil, fmt.Errorf("transaction %s net %q: %w", txn.ID, net, err)
	}
	txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &txn, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
