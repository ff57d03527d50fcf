package table

// Row maps a column label to its cell. A label absent from the map reads as Null.
type Row map[string]Value

// Get returns the cell for label, or Null when the row has no such cell.
func (r Row) Get(label string) Value {
	return r[label]
}

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing one set of column labels.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates a table with the given column labels and no rows.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row built from cells in column order. Missing trailing cells are Null.
func (t *Table) Append(cells ...Value) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(cells) {
			row[col] = cells[i]
		} else {
			row[col] = Null()
		}
	}
	t.Rows = append(t.Rows, row)
}

// Empty reports whether the table has no rows. A nil table is empty.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether label is one of the table's columns.
// The comparison is exact; normalize the table first for case-insensitive lookups.
func (t *Table) HasColumn(label string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == label {
			return true
		}
	}
	return false
}

// MissingColumns returns the labels from required that the table lacks,
// in the order given.
func (t *Table) MissingColumns(required ...string) []string {
	var missing []string
	for _, r := range required {
		if !t.HasColumn(r) {
			missing = append(missing, r)
		}
	}
	return missing
}
