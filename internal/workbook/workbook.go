// Package workbook loads .xlsx workbooks into ordered, named tables.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-xlsx2pdf/internal/table"
)

// Sentinel errors for workbook loading.
var (
	ErrOpen          = errors.New("failed to open workbook")
	ErrReadSheet     = errors.New("failed to read sheet")
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
)

// Sheet is one named table in workbook order.
type Sheet struct {
	Name  string
	Table *table.Table
}

// Workbook holds every sheet of a file in tab order.
type Workbook struct {
	Sheets []Sheet
}

// Open reads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	return load(f)
}

// Read reads a workbook from r.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	return load(f)
}

func load(f *excelize.File) (*Workbook, error) {
	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrEmptyWorkbook
	}

	wb := &Workbook{Sheets: make([]Sheet, 0, len(names))}
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrReadSheet, name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Table: FromRows(rows)})
	}
	return wb, nil
}

// FromRows builds a table from raw string rows. The first row is the header;
// blank header cells become "unnamed: N" (zero-based column index) and
// repeated labels get a ".N" suffix. Fully blank rows are skipped and empty
// cells are Null.
func FromRows(rows [][]string) *table.Table {
	if len(rows) == 0 {
		return table.New()
	}

	header := rows[0]
	width := len(header)
	for _, r := range rows[1:] {
		if len(r) > width {
			width = len(r)
		}
	}

	cols := make([]string, width)
	seen := make(map[string]int, width)
	for i := range cols {
		label := ""
		if i < len(header) {
			label = header[i]
		}
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("unnamed: %d", i)
		}
		if n, dup := seen[label]; dup {
			seen[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n+1)
		} else {
			seen[label] = 0
		}
		cols[i] = label
	}

	t := table.New(cols...)
	for _, r := range rows[1:] {
		if blank(r) {
			continue
		}
		cells := make([]table.Value, width)
		for i := range cells {
			if i < len(r) && r[i] != "" {
				cells[i] = table.String(r[i])
			}
		}
		t.Append(cells...)
	}
	return t
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Names returns the sheet names in tab order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
