package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

func (s *Store) CreateAccount(ctx context.Context, acc *ledger.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (id, name, class, opening, branch, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		acc.ID, acc.Name, string(acc.Class), acc.Opening.String(), acc.Branch,
		acc.CreatedAt.Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ledger.ErrDuplicateAccount, acc.ID)
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// SetOpeningBalance is the one administrative edit accounts allow.
func (s *Store) SetOpeningBalance(ctx context.Context, id string, opening decimal.Decimal) error {
	res, err := s.writer.ExecContext(ctx,
		`UPDATE accounts SET opening = ? WHERE id = ?`, opening.String(), id)
	if err != nil {
		return fmt.Errorf("update opening: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update opening: %w", err)
	}
	if n == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, name, class, opening, branch, created_at FROM accounts WHERE id = ?`, id)

	var acc ledger.Account
	var opening, createdAt string
	err := row.Scan(&acc.ID, &acc.Name, &acc.Class, &opening, &acc.Branch, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if acc.Opening, err = decimal.NewFromString(opening); err != nil {
		return nil, fmt.Errorf("account %s opening %q: %w", acc.ID, opening, err)
	}
	acc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &acc, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter AccountFilter) ([]ledger.Account, error) {
	query := `SELECT id, name, class, opening, branch, created_at FROM accounts WHERE 1=1`
	args := []any{}

	if filter.Class != "" {
		query += ` AND class = ?`
		args = append(args, string(filter.Class))
	}
	if filter.Branch != "" {
		query += ` AND branch = ?`
		args = append(args, filter.Branch)
	}

	query += ` ORDER BY id`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var acc ledger.Account
		var opening, createdAt string
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Class, &opening, &acc.Branch, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		if acc.Opening, err = decimal.NewFromString(opening); err != nil {
			return nil, fmt.Errorf("account %s opening %q: %w", acc.ID, opening, err)
		}
		acc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
