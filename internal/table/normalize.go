package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnCollision indicates two column labels normalize to the same label.
var ErrColumnCollision = errors.New("column labels collide after normalization")

// NormalizeLabel lowercases and trims a column label.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Normalize returns a new table whose column labels are lowercased and trimmed.
// Cell values are untouched; rows are re-keyed into fresh maps so the result
// never aliases t. Normalize is idempotent.
//
// Two labels that normalize to the same string are rejected with
// ErrColumnCollision rather than silently merging their cells.
func Normalize(t *Table) (*Table, error) {
	if t == nil {
		return New(), nil
	}

	labels := make(map[string]string, len(t.Columns)) // normalized -> original
	out := &Table{Columns: make([]string, len(t.Columns))}

	for i, col := range t.Columns {
		norm := NormalizeLabel(col)
		if prev, ok := labels[norm]; ok {
			return nil, fmt.Errorf("%w: %q and %q both become %q", ErrColumnCollision, prev, col, norm)
		}
		labels[norm] = col
		out.Columns[i] = norm
	}

	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		nr := make(Row, len(row))
		for _, col := range t.Columns {
			if v, ok := row[col]; ok {
				nr[NormalizeLabel(col)] = v
			}
		}
		out.Rows[i] = nr
	}

	return out, nil
}
