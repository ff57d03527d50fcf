package xlsx2pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-xlsx2pdf/internal/sections"
)

// Engine selects how rendered templates become a PDF.
type Engine string

const (
	// EngineLaTeX renders report.tex and compiles it with pdflatex.
	EngineLaTeX Engine = "latex"
	// EngineChrome renders report.html and prints it with headless Chrome.
	EngineChrome Engine = "chrome"
)

// ParseEngine returns the engine for a case-insensitive name.
// An empty name selects EngineLaTeX.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineLaTeX:
		return EngineLaTeX, nil
	case EngineChrome:
		return EngineChrome, nil
	default:
		return "", fmt.Errorf("%w: %q (must be latex or chrome)", ErrInvalidEngine, name)
	}
}

// SourceExt returns the file extension of the rendered template source.
func (e Engine) SourceExt() string {
	if e == EngineChrome {
		return "html"
	}
	return "tex"
}

// Input is one conversion request.
type Input struct {
	// Workbook is the path to an .xlsx file. Ignored when Reader is set.
	Workbook string
	// Reader supplies the workbook bytes directly.
	Reader io.Reader
	// Month is a full English month name. Empty disables log filtering.
	Month string
	// SourceOnly stops after rendering; Result.PDF stays nil.
	SourceOnly bool
}

// Result holds the outputs of a conversion.
type Result struct {
	Engine Engine
	Source []byte // rendered report.tex or report.html
	PDF    []byte
	Report *Report
}

// Section types, re-exported so callers can supply sections themselves
// with WithSections.
type (
	Report           = sections.Report
	Sections         = sections.Sections
	TitleBlock       = sections.TitleBlock
	ContactInfo      = sections.ContactInfo
	ExecSummary      = sections.ExecSummary
	StaffingEntry    = sections.StaffingEntry
	PersonLogsConfig = sections.PersonLogsConfig
	LogSheet         = sections.LogSheet
	Record           = sections.Record
)

// Default section titles.
const (
	DefaultTaskSummaryTitle = sections.DefaultTaskSummaryTitle
	DefaultPersonLogsTitle  = sections.DefaultPersonLogsTitle
	DefaultConfigPrefix     = sections.DefaultConfigPrefix
)
