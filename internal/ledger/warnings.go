package ledger

import "fmt"

// WarningCode classifies a data-quality finding.
type WarningCode string

const (
	WarnMissingAccountRef WarningCode = "missing_account_ref"
	WarnUnknownAccount    WarningCode = "unknown_account"
	WarnUnknownItem       WarningCode = "unknown_item"
	WarnNegativeStock     WarningCode = "negative_stock"
	WarnNegativeCash      WarningCode = "negative_cash"
	WarnNotReconciled     WarningCode = "not_reconciled"
)

// Warning is a non-fatal data-quality finding. Reports are always produced;
// warnings travel with the result instead of aborting it.
type Warning struct {
	Code    WarningCode `json:"code"`
	Subject string      `json:"subject,omitempty"`
	Detail  string      `json:"detail"`
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Code, w.Subject, w.Detail)
}

// Warnf builds a warning with a formatted detail message.
func Warnf(code WarningCode, subject, format string, args ...any) Warning {
	return Warning{Code: code, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}
