package sections

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for section extraction.
var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoSummarySheet = errors.New("no summary sheet found")
)

// MissingColumnsError names the required columns a config sheet lacks.
type MissingColumnsError struct {
	Section string // config sheet name without prefix, e.g. "staffing_info"
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("%s in %s sheet: %s", ErrMissingColumns, e.Section, strings.Join(e.Columns, ", "))
}

// Is matches ErrMissingColumns.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
