package dateutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// layouts are tried in order by ParseDate.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"20060102",
	"01/02/2006",
	"1/2/2006",
	"01-02-06", // spreadsheet default short date
	"1/2/06",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Excel's day zero for the 1900 date system (accounts for the 1900 leap-year bug).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a sheet date in any of the common spreadsheet layouts,
// including Excel serial day numbers. It reports false instead of failing.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Serial numbers, optionally with a fractional time part. Eight-digit
	// integers were already tried as YYYYMMDD above.
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 && n < 2958466 {
		days := math.Floor(n)
		secs := math.Round((n - days) * 86400)
		return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second), true
	}

	return time.Time{}, false
}

// FormatISO returns t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02")
}
