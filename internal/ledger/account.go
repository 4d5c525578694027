package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AccountClass string

const (
	ClassCustomer AccountClass = "customer"
	ClassSupplier AccountClass = "supplier"
	ClassSafe     AccountClass = "safe"
	ClassBank     AccountClass = "bank"
	ClassPartner  AccountClass = "current_account"
)

var AllClasses = []AccountClass{
	ClassCustomer,
	ClassSupplier,
	ClassSafe,
	ClassBank,
	ClassPartner,
}

// Account is a single-sided running-balance account. The opening balance is
// set administratively; transactions never mutate it.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Class     AccountClass    `json:"class"`
	Opening   decimal.Decimal `json:"opening"`
	Branch    string          `json:"branch,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsCash reports whether the account holds settled money (safe or bank).
func (a *Account) IsCash() bool {
	return a.Class == ClassSafe || a.Class == ClassBank
}

// Validate checks all account invariants.
func (a *Account) Validate() error {
	if a.ID == "" {
		return ErrInvalidAccountID
	}
	if !ValidClass(a.Class) {
		return fmt.Errorf("%w: %q", ErrInvalidClass, a.Class)
	}
	if a.Name == "" {
		return fmt.Errorf("account name is required")
	}
	return nil
}

// ClassLabel returns a human-readable label for an account class.
func ClassLabel(class AccountClass) string {
	switch class {
	case ClassCustomer:
		return "Customer"
	case ClassSupplier:
		return "Supplier"
	case ClassSafe:
		return "Safe"
	case ClassBank:
		return "Bank"
	case ClassPartner:
		return "Partner Current Account"
	default:
		return string(class)
	}
}

// ValidClass checks if an account class string is valid.
func ValidClass(class AccountClass) bool {
	for _, c := range AllClasses {
		if c == class {
			return true
		}
	}
	return false
}
