package main

import (
	"errors"
	"os"

	xlsx2pdf "github.com/alnah/go-xlsx2pdf"
	"github.com/alnah/go-xlsx2pdf/internal/config"
	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
)

// Exit codes for the xlsx2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, month, template or workbook layout
	ExitIO       = 3 // Workbook not found, permission denied, output not writable
	ExitCompiler = 4 // pdflatex or Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compiler and browser errors (exit 4)
	if errors.Is(err, xlsx2pdf.ErrCompile) ||
		errors.Is(err, xlsx2pdf.ErrCompilerNotFound) ||
		errors.Is(err, xlsx2pdf.ErrBrowserConnect) ||
		errors.Is(err, xlsx2pdf.ErrPageCreate) ||
		errors.Is(err, xlsx2pdf.ErrPageLoad) ||
		errors.Is(err, xlsx2pdf.ErrPDFGeneration) {
		return ExitCompiler
	}

	// Usage/config/validation errors (exit 2). Checked before I/O so a
	// missing template directory reports as a template problem.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, xlsx2pdf.ErrInvalidMonth) ||
		errors.Is(err, xlsx2pdf.ErrInvalidInput) ||
		errors.Is(err, xlsx2pdf.ErrInvalidEngine) ||
		errors.Is(err, xlsx2pdf.ErrInvalidPasses) ||
		errors.Is(err, xlsx2pdf.ErrTemplateNotFound) ||
		errors.Is(err, xlsx2pdf.ErrIncompleteTemplateSet) ||
		errors.Is(err, xlsx2pdf.ErrStyleNotFound) ||
		errors.Is(err, xlsx2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, xlsx2pdf.ErrMissingColumns) ||
		errors.Is(err, xlsx2pdf.ErrNoSummarySheet) ||
		errors.Is(err, xlsx2pdf.ErrColumnCollision) ||
		errors.Is(err, xlsx2pdf.ErrEmptyWorkbook) ||
		errors.Is(err, xlsx2pdf.ErrRender) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, xlsx2pdf.ErrNoWorkbook) ||
		errors.Is(err, xlsx2pdf.ErrWorkbookOpen) ||
		errors.Is(err, xlsx2pdf.ErrReadSheet) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
