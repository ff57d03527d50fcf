package xlsx2pdf

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// ---------------------------------------------------------------------------
// Internal test options
// ---------------------------------------------------------------------------

func withCompiler(c compiler) Option {
	return func(conv *Converter) {
		conv.compiler = c
	}
}

// july2025 pins the clock so month names resolve to 2025.
func july2025() time.Time {
	return time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockCompiler struct {
	mu     sync.Mutex
	called bool
	source string
	output []byte
	err    error
	panics bool
	closed bool
}

func (m *mockCompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panics {
		panic("compiler exploded")
	}
	m.called = true
	m.source = source
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.5 fake"), nil
}

func (m *mockCompiler) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Workbook fixtures
// ---------------------------------------------------------------------------

type sheetRows struct {
	name string
	rows [][]any
}

// writeWorkbook saves the sheets, in order, to a temp .xlsx file.
func writeWorkbook(t *testing.T, sheets ...sheetRows) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("SetSheetName() error = %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet(%q) error = %v", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName() error = %v", err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow() error = %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

// reportSheets is a complete workbook: every config sheet, a summary and two logs.
func reportSheets() []sheetRows {
	return []sheetRows{
		{"config_title_block", [][]any{
			{"Key", "Value"},
			{"header", "R&D Operations"},
			{"subheader", "Monthly Report"},
			{"date", "Q3"},
		}},
		{"Summary", [][]any{
			{"Person", "Total_Hours"},
			{"alice", 12},
			{"bob", 4},
		}},
		{"config_contact_info", [][]any{
			{"Key", "Value"},
			{"Email", "ops@example.com"},
		}},
		{"config_exec_summary", [][]any{
			{"Value"},
			{"Costs fell 5% this month."},
		}},
		{"config_staffing_info", [][]any{
			{"Name", "Role", "Start_Date"},
			{"Alice Smith", "Lead", "2024-03-01"},
		}},
		{"alice", [][]any{
			{"Date", "Task"},
			{20250701, "Review_budget"},
			{20250802, "Deploy cluster"},
		}},
		{"bob", [][]any{
			{"Date", "Task"},
			{20250715, "Oncall"},
		}},
	}
}

// fixtureWorkbook writes reportSheets and returns its path.
func fixtureWorkbook(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, reportSheets()...)
}

// readFile fails the test when path cannot be read.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", path, err)
	}
	return string(data)
}
