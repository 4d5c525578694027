package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAccountID    = errors.New("invalid account id")
	ErrInvalidItemID       = errors.New("invalid item id")
	ErrInvalidClass        = errors.New("invalid account class")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidLine         = errors.New("invalid line entry")
	ErrNoLines             = errors.New("stock document must have at least one line")
	ErrAccountNotFound     = errors.New("account not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateAccount    = errors.New("account already exists")
	ErrDuplicateItem       = errors.New("item already exists")
)

// ValidationError describes a malformed scalar parameter on a report
// request. It aborts the single request and nothing else.
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}
