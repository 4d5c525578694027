package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafterhq/dafter/internal/ledger"
)

func TestComputeBalance_Customer(t *testing.T) {
	acc := customer("C001", "5000")
	txns := []ledger.Transaction{
		invoice(ledger.KindSalesInvoice, date(2025, time.February, 10), "C001", "4800", "720"), // net 5520
		voucher(ledger.KindReceiptVoucher, date(2025, time.February, 20), ledger.EntityCustomer, "C001", "SF-001", "5000"),
	}

	bal, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, "5000", bal.Opening)
	requireDec(t, "5520", bal.TotalDebit)
	requireDec(t, "5000", bal.TotalCredit)
	requireDec(t, "5520", bal.Balance)
	assert.Empty(t, bal.Warnings)
}

func TestComputeBalance_Safe(t *testing.T) {
	acc := safe("SF-001", "100000")
	txns := []ledger.Transaction{
		voucher(ledger.KindReceiptVoucher, date(2025, time.February, 20), ledger.EntityCustomer, "C001", "SF-001", "5000"),
		voucher(ledger.KindPaymentVoucher, date(2025, time.February, 25), ledger.EntityExpense, "rent", "SF-001", "8000"),
	}

	bal, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, "5000", bal.TotalDebit)
	requireDec(t, "8000", bal.TotalCredit)
	requireDec(t, "97000", bal.Balance)
}

// A partner deposit is a receipt voucher, which the classification table
// credits, so the balance goes down. The sign convention is deliberate and
// must hold exactly.
func TestComputeBalance_PartnerDepositSign(t *testing.T) {
	acc := partner("CA-002", "15000")
	txns := []ledger.Transaction{
		voucher(ledger.KindReceiptVoucher, date(2025, time.March, 1), ledger.EntityPartner, "CA-002", "SF-001", "50000"),
	}

	bal, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, "0", bal.TotalDebit)
	requireDec(t, "50000", bal.TotalCredit)
	requireDec(t, "-35000", bal.Balance)
}

func TestComputeBalance_SupplierDirections(t *testing.T) {
	acc := supplier("S001", "0")
	txns := []ledger.Transaction{
		invoice(ledger.KindPurchaseInvoice, date(2025, time.April, 1), "S001", "10000", "1500"), // credit 11500
		invoice(ledger.KindPurchaseReturn, date(2025, time.April, 5), "S001", "2000", "300"),    // debit 2300
		voucher(ledger.KindPaymentVoucher, date(2025, time.April, 10), ledger.EntitySupplier, "S001", "SF-001", "5000"), // credit
	}

	bal, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, "2300", bal.TotalDebit)
	requireDec(t, "16500", bal.TotalCredit)
	requireDec(t, "-14200", bal.Balance)
}

func TestComputeBalance_RefundVouchers(t *testing.T) {
	refund := voucher(ledger.KindPaymentVoucher, date(2025, time.May, 2), ledger.EntityCustomer, "C001", "SF-001", "700")
	refund.Refund = true

	bal, err := ComputeBalance(customer("C001", "0"), []ledger.Transaction{refund}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "700", bal.TotalDebit)
	requireDec(t, "700", bal.Balance)

	// Without the refund flag the payment voucher has no customer rule.
	plain := refund
	plain.Refund = false
	bal, err = ComputeBalance(customer("C001", "0"), []ledger.Transaction{plain}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "0", bal.Balance)

	supplierRefund := voucher(ledger.KindReceiptVoucher, date(2025, time.May, 3), ledger.EntitySupplier, "S001", "SF-001", "900")
	supplierRefund.Refund = true
	bal, err = ComputeBalance(supplier("S001", "0"), []ledger.Transaction{supplierRefund}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "900", bal.TotalDebit)
}

// Cash moves the same way whether or not a voucher is a refund: a refund
// paid out of the safe is still money leaving the safe.
func TestComputeBalance_RefundVouchersStillMoveCash(t *testing.T) {
	refund := voucher(ledger.KindPaymentVoucher, date(2025, time.May, 2), ledger.EntityCustomer, "C001", "SF-001", "700")
	refund.Refund = true

	bal, err := ComputeBalance(safe("SF-001", "1000"), []ledger.Transaction{refund}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "700", bal.TotalCredit)
	requireDec(t, "300", bal.Balance)

	supplierRefund := voucher(ledger.KindReceiptVoucher, date(2025, time.May, 3), ledger.EntitySupplier, "S001", "SF-001", "900")
	supplierRefund.Refund = true
	bal, err = ComputeBalance(safe("SF-001", "0"), []ledger.Transaction{supplierRefund}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "900", bal.TotalDebit)
}

// Partner rules ignore the refund flag too; the voucher kind alone decides
// the direction.
func TestComputeBalance_PartnerRefundVoucher(t *testing.T) {
	refund := voucher(ledger.KindPaymentVoucher, date(2025, time.May, 2), ledger.EntityPartner, "CA-002", "SF-001", "400")
	refund.Refund = true

	bal, err := ComputeBalance(partner("CA-002", "0"), []ledger.Transaction{refund}, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "400", bal.TotalDebit)
	requireDec(t, "400", bal.Balance)
}

func TestComputeBalance_CashInvoiceHitsSafeOnly(t *testing.T) {
	cashSale := invoice(ledger.KindSalesInvoice, date(2025, time.June, 1), "C001", "1000", "150")
	cashSale.SettlementID = "SF-001"
	creditSale := invoice(ledger.KindSalesInvoice, date(2025, time.June, 2), "C001", "2000", "300")
	txns := []ledger.Transaction{cashSale, creditSale}

	bal, err := ComputeBalance(safe("SF-001", "0"), txns, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "1150", bal.TotalDebit) // only the cash-settled invoice

	// The customer is debited by both per the classification table.
	bal, err = ComputeBalance(customer("C001", "0"), txns, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "3450", bal.TotalDebit)
}

func TestComputeBalance_CutoffInclusive(t *testing.T) {
	acc := customer("C001", "0")
	txns := []ledger.Transaction{
		invoice(ledger.KindSalesInvoice, date(2025, time.July, 15), "C001", "100", "0"),
		invoice(ledger.KindSalesInvoice, date(2025, time.July, 16), "C001", "200", "0"),
	}

	bal, err := ComputeBalance(acc, txns, "2025-07-15")
	require.NoError(t, err)
	requireDec(t, "100", bal.Balance)

	bal, err = ComputeBalance(acc, txns, "2025-07-16")
	require.NoError(t, err)
	requireDec(t, "300", bal.Balance)
}

func TestComputeBalance_SameDateBothIncluded(t *testing.T) {
	acc := customer("C001", "0")
	txns := []ledger.Transaction{
		invoice(ledger.KindSalesInvoice, date(2025, time.July, 15), "C001", "100", "0"),
		voucher(ledger.KindReceiptVoucher, date(2025, time.July, 15), ledger.EntityCustomer, "C001", "SF-001", "40"),
	}

	bal, err := ComputeBalance(acc, txns, "2025-07-15")
	require.NoError(t, err)
	requireDec(t, "60", bal.Balance)
}

func TestComputeBalance_MissingRefExcludedWithWarning(t *testing.T) {
	orphan := invoice(ledger.KindSalesInvoice, date(2025, time.August, 1), "", "999", "0")
	txns := []ledger.Transaction{
		orphan,
		invoice(ledger.KindSalesInvoice, date(2025, time.August, 2), "C001", "100", "0"),
	}

	bal, err := ComputeBalance(customer("C001", "0"), txns, "2025-12-31")
	require.NoError(t, err)
	requireDec(t, "100", bal.Balance)
	require.Len(t, bal.Warnings, 1)
	assert.Equal(t, ledger.WarnMissingAccountRef, bal.Warnings[0].Code)
}

func TestComputeBalance_InvalidDate(t *testing.T) {
	_, err := ComputeBalance(customer("C001", "0"), nil, "31/12/2025")
	require.Error(t, err)

	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "as_of", verr.Param)
}

// The difference between two as-of balances must equal the signed sum of
// the matching transactions dated inside the half-open interval.
func TestComputeBalance_IncrementalConsistency(t *testing.T) {
	acc := customer("C001", "5000")
	txns := []ledger.Transaction{
		invoice(ledger.KindSalesInvoice, date(2025, time.January, 10), "C001", "1000", "0"),
		invoice(ledger.KindSalesReturn, date(2025, time.February, 5), "C001", "300", "0"),
		voucher(ledger.KindReceiptVoucher, date(2025, time.March, 20), ledger.EntityCustomer, "C001", "SF-001", "400"),
		invoice(ledger.KindSalesInvoice, date(2025, time.April, 1), "C001", "2500", "0"),
	}

	at := func(asOf string) *ledger.AccountBalance {
		bal, err := ComputeBalance(acc, txns, asOf)
		require.NoError(t, err)
		return bal
	}

	t1 := at("2025-01-31")
	t2 := at("2025-03-31")

	// Inside (T1, T2]: return -300, receipt -400.
	requireDec(t, "-700", t2.Balance.Sub(t1.Balance))
}

func TestComputeBalance_Idempotent(t *testing.T) {
	acc := customer("C001", "5000")
	txns := []ledger.Transaction{
		invoice(ledger.KindSalesInvoice, date(2025, time.February, 10), "C001", "4800", "720"),
		voucher(ledger.KindReceiptVoucher, date(2025, time.February, 20), ledger.EntityCustomer, "C001", "SF-001", "5000"),
	}

	first, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)
	second, err := ComputeBalance(acc, txns, "2025-12-31")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
