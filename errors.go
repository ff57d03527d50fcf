package xlsx2pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/render"
	"github.com/alnah/go-xlsx2pdf/internal/sections"
	"github.com/alnah/go-xlsx2pdf/internal/table"
	"github.com/alnah/go-xlsx2pdf/internal/workbook"
)

// Sentinel errors for library operations.
var (
	ErrNoWorkbook   = errors.New("no workbook given")
	ErrCompile      = errors.New("document compilation failed")
	ErrInvalidInput = errors.New("invalid input")

	// Workbook errors.
	ErrWorkbookOpen  = workbook.ErrOpen
	ErrReadSheet     = workbook.ErrReadSheet
	ErrEmptyWorkbook = workbook.ErrEmptyWorkbook

	// Extraction errors.
	ErrMissingColumns  = sections.ErrMissingColumns
	ErrNoSummarySheet  = sections.ErrNoSummarySheet
	ErrColumnCollision = table.ErrColumnCollision
	ErrInvalidMonth    = dateutil.ErrInvalidMonth

	// Rendering errors.
	ErrRender = render.ErrRender

	// Engine errors.
	ErrInvalidEngine    = errors.New("invalid engine")
	ErrInvalidPasses    = errors.New("invalid number of passes")
	ErrCompilerNotFound = errors.New("compiler not found")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateNotFound      = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// MissingColumnsError names the required columns a config sheet lacks.
type MissingColumnsError = sections.MissingColumnsError

// RenderError reports a template failure with the offending line when known.
type RenderError = render.Error

// CompileError reports a failed compiler run. LogTail holds the last lines
// of the compiler log, which usually name the offending input.
type CompileError struct {
	Engine  string // compiler binary, e.g. "pdflatex"
	Pass    int    // 1-based pass that failed
	LogTail []string
	Err     error
}

func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrCompile, e.Engine)
	if e.Pass > 0 {
		fmt.Fprintf(&b, " pass %d", e.Pass)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.LogTail) > 0 {
		b.WriteString("\n  ")
		b.WriteString(strings.Join(e.LogTail, "\n  "))
	}
	return b.String()
}

// Unwrap returns the underlying process error.
func (e *CompileError) Unwrap() error { return e.Err }

// Is matches ErrCompile.
func (e *CompileError) Is(target error) bool { return target == ErrCompile }
