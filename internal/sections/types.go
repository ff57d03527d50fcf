package sections

import "github.com/alnah/go-xlsx2pdf/internal/table"

// Defaults used when a sheet does not provide a value.
const (
	DefaultHeader           = "Default Header"
	DefaultSubheader        = "Default Subheader"
	DefaultDate             = "Undated"
	DefaultExecSummaryTitle = "Executive Summary"
	DefaultTaskSummaryTitle = "Task Summary"
	DefaultPersonLogsTitle  = "Individual Activity Logs"
)

// TitleBlock holds the document heading.
type TitleBlock struct {
	Header    string `yaml:"header"`
	Subheader string `yaml:"subheader"`
	Date      string `yaml:"date"`
}

// ExecSummary holds the single executive summary paragraph.
type ExecSummary struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// StaffingEntry is one staff member. StartDate is YYYY-MM-DD or empty.
type StaffingEntry struct {
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	StartDate string `yaml:"start_date"`
}

// ContactEntry is one contact key/value pair.
type ContactEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ContactInfo is an ordered set of contact entries with unique keys.
type ContactInfo struct {
	entries []ContactEntry
}

// Set stores value under key. An existing key keeps its position and takes the new value.
func (c *ContactInfo) Set(key, value string) {
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries[i].Value = value
			return
		}
	}
	c.entries = append(c.entries, ContactEntry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (c *ContactInfo) Get(key string) (string, bool) {
	for _, e := range c.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (c *ContactInfo) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c *ContactInfo) Entries() []ContactEntry {
	out := make([]ContactEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Map returns the entries as a plain map.
func (c *ContactInfo) Map() map[string]string {
	out := make(map[string]string, len(c.entries))
	for _, e := range c.entries {
		out[e.Key] = e.Value
	}
	return out
}

// MarshalYAML dumps the entries in order.
func (c ContactInfo) MarshalYAML() (any, error) {
	return c.Entries(), nil
}

// Record is one passthrough log row keyed by normalized column label.
type Record map[string]table.Value

// LogSheet is a filtered log table.
type LogSheet struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Records []Record `yaml:"records"`
}

// PersonLogsConfig controls how per-person log tables are presented.
// An empty Columns list shows every column of each sheet.
type PersonLogsConfig struct {
	Title   string   `yaml:"title"`
	Columns []string `yaml:"columns"`
}

// Sections groups the four config-driven records.
type Sections struct {
	TitleBlock  TitleBlock      `yaml:"title_block"`
	ContactInfo ContactInfo     `yaml:"contact_info"`
	ExecSummary ExecSummary     `yaml:"exec_summary"`
	Staffing    []StaffingEntry `yaml:"staffing_info"`
}

// Report is everything the template needs for one run.
type Report struct {
	Sections         `yaml:",inline"`
	SummarySheet     string           `yaml:"summary_sheet"`
	SummaryColumns   []string         `yaml:"summary_columns"`
	Summary          []Record         `yaml:"summary"`
	Logs             []LogSheet       `yaml:"all_logs"`
	TaskSummaryTitle string           `yaml:"task_summary_title"`
	PersonLogs       PersonLogsConfig `yaml:"person_logs_config"`
}

// Get returns the cell stored under label, or Null.
func (r Record) Get(label string) table.Value {
	return r[label]
}
