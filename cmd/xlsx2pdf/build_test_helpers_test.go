package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake LaTeX and environment
// ---------------------------------------------------------------------------

// fakeLaTeX stands in for pdflatex: it writes <job>.pdf, .aux and .log
// into the work directory, or fails with err.
type fakeLaTeX struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeLaTeX) Run(_ context.Context, dir, _ string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}

	job := strings.TrimSuffix(args[len(args)-1], ".tex")
	files := map[string]string{
		".pdf": "%PDF-1.5 " + job,
		".aux": "aux",
		".log": "This is pdfTeX",
	}
	for ext, content := range files {
		if err := os.WriteFile(filepath.Join(dir, job+ext), []byte(content), 0o600); err != nil {
			return "", "", err
		}
	}
	return "Output written on " + job + ".pdf", "", nil
}

func (f *fakeLaTeX) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// july2025 pins the clock so month names resolve to 2025.
func july2025() time.Time {
	return time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
}

// testEnv returns an Environment with captured output and a fake compiler.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer, *fakeLaTeX) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	runner := &fakeLaTeX{}
	return &Environment{
		Now:    july2025,
		Stdout: stdout,
		Stderr: stderr,
		Runner: runner,
	}, stdout, stderr, runner
}

// ---------------------------------------------------------------------------
// Workbook fixtures
// ---------------------------------------------------------------------------

// writeTestWorkbook saves a small report workbook into dir.
func writeTestWorkbook(t *testing.T, dir string) string {
	t.Helper()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"config_title_block", [][]any{
			{"Key", "Value"},
			{"header", "Field Operations"},
			{"subheader", "Monthly Report"},
		}},
		{"Summary", [][]any{
			{"Person", "Total_Hours"},
			{"alice", 12},
		}},
		{"config_staffing_info", [][]any{
			{"Name", "Role", "Start_Date"},
			{"Alice Smith", "Lead", "2024-03-01"},
		}},
		{"alice", [][]any{
			{"Date", "Task"},
			{20250701, "Site visit"},
			{20250802, "Inventory"},
		}},
	}

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

	path := filepath.Join(dir, "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

// writeTestConfig writes content to a YAML file in dir.
func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// readTestFile fails the test when path cannot be read.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", path, err)
	}
	return string(data)
}
