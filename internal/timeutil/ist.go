package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Clock returns the current instant. Forms take one so tests can pin the month.
type Clock func() time.Time

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// MonthKey formats t as the YYYY-MM key payments are grouped by.
// The month is taken in UTC, matching how the backend stamps month_year.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(IST).Format(layout)
}

// DisplayDate renders a payment or member date for tables, e.g. "14 Oct 2026".
func DisplayDate(t time.Time) string {
	return FormatIST(t, DateDisplayLayout)
}

// Common layouts for IST formatting
const (
	MonthLayout       = "2006-01"
	DateDisplayLayout = "02 Jan 2006"
	DisplayLayout     = "02 Jan 2006, 03:04 PM"
)
