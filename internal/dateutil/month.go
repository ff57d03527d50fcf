package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonth indicates a month name outside the twelve full English names.
var ErrInvalidMonth = errors.New("invalid month")

// Month is a report month resolved against the current year.
type Month struct {
	Month time.Month
	Year  int
}

// ParseMonth resolves a full English month name (case-insensitive, surrounding
// whitespace ignored) against now's year. Abbreviations are rejected.
func ParseMonth(name string, now time.Time) (*Month, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == key {
			return &Month{Month: m, Year: now.Year()}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q, use full names like \"june\" or \"september\"", ErrInvalidMonth, name)
}

// Name returns the capitalized month name, e.g. "July".
func (m *Month) Name() string {
	return m.Month.String()
}

// Prefix returns the YYYYMM prefix matched against log dates, e.g. "202507".
func (m *Month) Prefix() string {
	return fmt.Sprintf("%04d%02d", m.Year, int(m.Month))
}

// Label returns the display form used for the title block date, e.g. "July 2025".
func (m *Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
