package util

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the day-first layout used in tables and hover text.
	DateLayout = "02/01/2006"
	// MonthLayout labels monthly axis ticks.
	MonthLayout = "01/2006"
)

// FormatDate renders a calendar date as dd/mm/YYYY, or "" for the zero time.
// Spreadsheet dates carry no zone, so no conversion is applied.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDatePtr is FormatDate for optional dates
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatMonth renders a tick label such as 03/2024
func FormatMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// FormatNumber adds thousands separators
func FormatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}
	if neg {
		return "-" + string(result)
	}
	return string(result)
}

// FormatPercent renders a percentage without decimals, e.g. "45%"
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
