package store

import (
	"context"
	"fmt"

	"github.com/dafterhq/dafter/internal/ledger"
)

// LoadSnapshot reads the whole books into an immutable in-memory view for
// the engine. One load per report request; every statement line then
// computes from the same data with no further reads.
func (s *Store) LoadSnapshot(ctx context.Context) (*ledger.Snapshot, error) {
	accounts, err := s.ListAccounts(ctx, AccountFilter{})
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	txns, err := s.ListTransactions(ctx, TxnFilter{})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return &ledger.Snapshot{
		Accounts:     accounts,
		Items:        items,
		Transactions: txns,
	}, nil
}
