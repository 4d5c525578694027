package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (1)`); err != nil {
			return fmt.Errorf("record v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx execer) error {
	stmts := []string{
		`CREATE TABLE accounts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			class TEXT NOT NULL,
			opening TEXT NOT NULL DEFAULT '0',
			branch TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			purchase_price TEXT NOT NULL DEFAULT '0',
			opening_stock TEXT NOT NULL DEFAULT '0',
			reorder_level TEXT NOT NULL DEFAULT '0',
			created_at TEXT NOT NULL
		)`,
		// Amounts are decimal strings; dates are YYYY-MM-DD, so text
		// comparison gives the cutoff queries the right order.
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			date TEXT NOT NULL,
			subtotal TEXT NOT NULL DEFAULT '0',
			discount TEXT NOT NULL DEFAULT '0',
			tax TEXT NOT NULL DEFAULT '0',
			net TEXT NOT NULL DEFAULT '0',
			account_id TEXT NOT NULL DEFAULT '',
			entity_type TEXT NOT NULL DEFAULT '',
			refund INTEGER NOT NULL DEFAULT 0,
			settlement_id TEXT NOT NULL DEFAULT '',
			branch TEXT NOT NULL DEFAULT '',
			from_store TEXT NOT NULL DEFAULT '',
			to_store TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transaction_id TEXT NOT NULL REFERENCES transactions(id),
			item_id TEXT NOT NULL DEFAULT '',
			account_id TEXT NOT NULL DEFAULT '',
			quantity TEXT NOT NULL DEFAULT '0',
			unit_price TEXT NOT NULL DEFAULT '0',
			amount TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE INDEX idx_transactions_date ON transactions(date)`,
		`CREATE INDEX idx_transactions_account ON transactions(account_id)`,
		`CREATE INDEX idx_lines_transaction ON lines(transaction_id)`,
		`CREATE INDEX idx_lines_item ON lines(item_id)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// execer is the slice of *sql.Tx the migrations need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
