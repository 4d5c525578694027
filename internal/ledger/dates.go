package ledger

import "time"

// DateLayout is the wire format for all report dates.
const DateLayout = "2006-01-02"

// ParseDate parses a report date parameter. Dates are day-granular; the
// engine never looks at time of day.
func ParseDate(param, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ValidationError{Param: param, Value: value, Reason: "date is required"}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &ValidationError{Param: param, Value: value, Reason: "want YYYY-MM-DD"}
	}
	return t, nil
}
