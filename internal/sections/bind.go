package sections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/table"
)

// Config sheet names, without the config prefix.
const (
	SheetTitleBlock  = "title_block"
	SheetContactInfo = "contact_info"
	SheetExecSummary = "exec_summary"
	SheetStaffing    = "staffing_info"
)

// DefaultConfigPrefix marks sheets that hold section configuration.
const DefaultConfigPrefix = "config_"

// Sheet is one named, normalized table.
type Sheet struct {
	Name  string
	Table *table.Table
}

// Options controls how a workbook is split into a report.
type Options struct {
	// ConfigPrefix marks config sheets. Matched case-insensitively. Empty uses DefaultConfigPrefix.
	ConfigPrefix string
	// SummarySheet names the summary sheet. Empty picks the first non-config sheet.
	SummarySheet string
	// Month, when set, filters logs by its YYYYMM prefix and overrides the title date.
	Month *dateutil.Month
	// Provider builds the config-driven sections. Nil uses WorkbookProvider.
	Provider Provider
	// TaskSummaryTitle and PersonLogs are passed through to the template.
	TaskSummaryTitle string
	PersonLogs       PersonLogsConfig
}

// ConfigSheets indexes the config sheets of a workbook by name with the prefix removed.
type ConfigSheets map[string]*table.Table

// Get returns the named config table, or an empty table when the sheet is absent.
func (c ConfigSheets) Get(name string) *table.Table {
	if t, ok := c[name]; ok && t != nil {
		return t
	}
	return table.New()
}

// Provider builds the four config-driven sections for a run.
type Provider interface {
	Sections(config ConfigSheets, month *dateutil.Month) (*Sections, error)
}

// WorkbookProvider computes sections from the workbook's config sheets.
type WorkbookProvider struct{}

// Sections runs every config extractor. Sections are independent of each other.
func (WorkbookProvider) Sections(config ConfigSheets, month *dateutil.Month) (*Sections, error) {
	contact, err := ContactInfoFromTable(config.Get(SheetContactInfo))
	if err != nil {
		return nil, withSection(err, SheetContactInfo)
	}
	staffing, err := StaffingFromTable(config.Get(SheetStaffing))
	if err != nil {
		return nil, withSection(err, SheetStaffing)
	}

	return &Sections{
		TitleBlock:  TitleBlockFromTable(config.Get(SheetTitleBlock), month),
		ContactInfo: contact,
		ExecSummary: ExecSummaryFromTable(config.Get(SheetExecSummary)),
		Staffing:    staffing,
	}, nil
}

// StaticProvider returns sections supplied ahead of time, ignoring config sheets.
// The month override still applies to the title date.
type StaticProvider struct {
	Supplied *Sections
}

// Sections returns a copy of the supplied sections.
func (p StaticProvider) Sections(_ ConfigSheets, month *dateutil.Month) (*Sections, error) {
	s := &Sections{
		TitleBlock:  TitleBlock{Header: DefaultHeader, Subheader: DefaultSubheader, Date: DefaultDate},
		ExecSummary: ExecSummary{Title: DefaultExecSummaryTitle},
		Staffing:    []StaffingEntry{},
	}
	if p.Supplied != nil {
		s.TitleBlock = p.Supplied.TitleBlock
		s.ExecSummary = p.Supplied.ExecSummary
		for _, e := range p.Supplied.ContactInfo.entries {
			s.ContactInfo.Set(e.Key, e.Value)
		}
		s.Staffing = append(s.Staffing, p.Supplied.Staffing...)
	}
	if month != nil {
		s.TitleBlock.Date = month.Label()
	}
	return s, nil
}

// Split binds a workbook's sheets to the report: config sheets feed the
// provider, the summary sheet is passed through unfiltered, and every other
// sheet becomes a log filtered by the month prefix. Sheet order is preserved.
func Split(sheets []Sheet, opts Options) (*Report, error) {
	prefix := strings.ToLower(opts.ConfigPrefix)
	if prefix == "" {
		prefix = DefaultConfigPrefix
	}
	isConfig := func(name string) bool {
		return strings.HasPrefix(strings.ToLower(name), prefix)
	}

	summary, err := findSummary(sheets, opts.SummarySheet, isConfig)
	if err != nil {
		return nil, err
	}

	config := make(ConfigSheets)
	report := &Report{
		SummarySheet:     sheets[summary].Name,
		SummaryColumns:   columnsOf(sheets[summary].Table),
		Summary:          Logs(sheets[summary].Table, ""),
		Logs:             []LogSheet{},
		TaskSummaryTitle: opts.TaskSummaryTitle,
		PersonLogs:       opts.PersonLogs,
	}
	if report.TaskSummaryTitle == "" {
		report.TaskSummaryTitle = DefaultTaskSummaryTitle
	}
	if report.PersonLogs.Title == "" {
		report.PersonLogs.Title = DefaultPersonLogsTitle
	}

	var datePrefix string
	if opts.Month != nil {
		datePrefix = opts.Month.Prefix()
	}

	for i, s := range sheets {
		switch {
		case isConfig(s.Name):
			config[strings.ToLower(s.Name)[len(prefix):]] = s.Table
		case i == summary:
		default:
			report.Logs = append(report.Logs, LogSheet{
				Name:    s.Name,
				Columns: columnsOf(s.Table),
				Records: Logs(s.Table, datePrefix),
			})
		}
	}

	provider := opts.Provider
	if provider == nil {
		provider = WorkbookProvider{}
	}
	secs, err := provider.Sections(config, opts.Month)
	if err != nil {
		return nil, err
	}
	report.Sections = *secs

	return report, nil
}

func findSummary(sheets []Sheet, name string, isConfig func(string) bool) (int, error) {
	if name != "" {
		for i, s := range sheets {
			if s.Name == name {
				if isConfig(s.Name) {
					return -1, fmt.Errorf("%w: %q is a config sheet", ErrNoSummarySheet, name)
				}
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: sheet %q does not exist", ErrNoSummarySheet, name)
	}

	for i, s := range sheets {
		if !isConfig(s.Name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: every sheet starts with the config prefix", ErrNoSummarySheet)
}

func columnsOf(t *table.Table) []string {
	cols := []string{}
	if t != nil {
		cols = append(cols, t.Columns...)
	}
	return cols
}

func withSection(err error, section string) error {
	var mc *MissingColumnsError
	if errors.As(err, &mc) {
		return &MissingColumnsError{Section: section, Columns: mc.Columns}
	}
	return err
}
