package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the as-of reconstruction of a single account: every
// matching transaction dated on or before AsOf folded over the opening
// balance. Debits and credits are non-negative magnitudes.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	AsOf        time.Time       `json:"as_of"`
	Opening     decimal.Decimal `json:"opening"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
	Warnings    []Warning       `json:"warnings,omitempty"`
}

// InventorySnapshot values one item as of a date. Quantity may be negative
// (over-issuance); Value clamps the negative to zero so a data problem does
// not leak into the balance sheet as negative stock value.
type InventorySnapshot struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Value    decimal.Decimal `json:"value"`
}

// InventoryReport is the whole-business stock valuation as of a date.
type InventoryReport struct {
	AsOf       time.Time           `json:"as_of"`
	Lines      []InventorySnapshot `json:"lines"`
	TotalValue decimal.Decimal     `json:"total_value"`
	Warnings   []Warning           `json:"warnings,omitempty"`
}

// BalanceSheet is the composed statement of financial position. Reconciled
// reports whether the accounting equation holds within tolerance; imbalance
// is diagnostic information, never an error.
type BalanceSheet struct {
	AsOf time.Time `json:"as_of"`

	Cash        decimal.Decimal `json:"cash"`
	Receivables decimal.Decimal `json:"receivables"`
	Inventory   decimal.Decimal `json:"inventory"`
	Assets      decimal.Decimal `json:"assets"`

	Payables    decimal.Decimal `json:"payables"`
	VatPayable  decimal.Decimal `json:"vat_payable"`
	Liabilities decimal.Decimal `json:"liabilities"`

	Capital         decimal.Decimal `json:"capital"`
	PartnerAccounts decimal.Decimal `json:"partner_accounts"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	Equity          decimal.Decimal `json:"equity"`

	Reconciled bool      `json:"reconciled"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// IncomeStatement covers a period with the periodic inventory method:
// COGS = opening inventory + net purchases - closing inventory.
type IncomeStatement struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	NetSales         decimal.Decimal `json:"net_sales"`
	NetPurchases     decimal.Decimal `json:"net_purchases"`
	OpeningInventory decimal.Decimal `json:"opening_inventory"`
	ClosingInventory decimal.Decimal `json:"closing_inventory"`
	COGS             decimal.Decimal `json:"cogs"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// VatDeclaration nets output tax on sales against input tax on purchases
// for a period. NetVat may be negative: a refund position, valid output.
type VatDeclaration struct {
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Branch      string          `json:"branch,omitempty"`
	OutputVat   decimal.Decimal `json:"output_vat"`
	InputVat    decimal.Decimal `json:"input_vat"`
	NetVat      decimal.Decimal `json:"net_vat"`
}

// ReorderLine flags an item whose derived quantity is at or below its
// reorder threshold.
type ReorderLine struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// ReorderReport lists the items due for reordering as of a date.
type ReorderReport struct {
	AsOf     time.Time     `json:"as_of"`
	Lines    []ReorderLine `json:"lines"`
	Warnings []Warning     `json:"warnings,omitempty"`
}
