package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Engine names accepted by engine.name.
const (
	EngineLaTeX  = "latex"
	EngineChrome = "chrome"
)

// Section sources accepted by sections.source.
const (
	SourceWorkbook = "workbook"
	SourceConfig   = "config"
)

// appDir is the directory name under the user config directory.
const appDir = "go-xlsx2pdf"

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxNameLength      = 100  // template, style, sheet, engine names
	MaxDelimLength     = 8    // "<<", "[[", "{%"
	MaxHeaderLength    = 200  // title block header/subheader
	MaxDateLength      = 50   // "July 2025" or "auto:MMMM YYYY"
	MaxKeyLength       = 100  // contact info key
	MaxValueLength     = 500  // contact info value
	MaxTitleLength     = 200  // section titles
	MaxBodyLength      = 20000
	MaxPersonLength    = 100  // staffing name/role
	MaxColumns         = 50   // personLogs.columns
	MaxPasses          = 5    // pdflatex reruns
	MaxContactEntries  = 100
	MaxStaffingEntries = 500
)

// Config holds all configuration for report generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Engine   EngineConfig   `yaml:"engine"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Sections SectionsConfig `yaml:"sections"`
}

// InputConfig defines the workbook and the month filter.
type InputConfig struct {
	Workbook string `yaml:"workbook"` // Empty = CLI default
	Month    string `yaml:"month"`    // Full English month name, empty = no filter
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path       string `yaml:"path"`       // Empty = CLI default
	KeepSource bool   `yaml:"keepSource"` // Also write the rendered .tex/.html
	KeepAux    bool   `yaml:"keepAux"`    // Leave pdflatex aux files in the work dir
}

// TemplateConfig selects the template set and its delimiters.
type TemplateConfig struct {
	Name       string `yaml:"name"`      // Template set name (default "default")
	AssetPath  string `yaml:"assetPath"` // Empty = embedded assets only
	Style      string `yaml:"style"`     // CSS for the chrome engine
	LeftDelim  string `yaml:"leftDelim"`
	RightDelim string `yaml:"rightDelim"`
}

// EngineConfig selects how the rendered source becomes a PDF.
type EngineConfig struct {
	Name     string `yaml:"name"`     // "latex" or "chrome"
	LaTeXBin string `yaml:"latexBin"` // pdflatex executable
	Passes   int    `yaml:"passes"`   // 0 = default (1), up to MaxPasses
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "90s"
}

// TimeoutDuration parses Timeout. Empty means zero (use the converter default).
func (e EngineConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: engine.timeout %q: %v", ErrInvalidValue, e.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: engine.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// SheetsConfig controls how workbook sheets are classified.
type SheetsConfig struct {
	ConfigPrefix string `yaml:"configPrefix"` // Default "config_"
	Summary      string `yaml:"summary"`      // Empty = first non-config sheet
}

// SectionsConfig holds report sections supplied by the config file.
// They replace the workbook's config sheets when Source is "config";
// TaskSummaryTitle and PersonLogs apply with either source.
type SectionsConfig struct {
	Source           string           `yaml:"source"`
	TitleBlock       TitleBlockConfig `yaml:"titleBlock"`
	ContactInfo      []ContactConfig  `yaml:"contactInfo"`
	ExecSummary      ExecSummary      `yaml:"execSummary"`
	Staffing         []StaffingConfig `yaml:"staffing"`
	TaskSummaryTitle string           `yaml:"taskSummaryTitle"`
	PersonLogs       PersonLogsConfig `yaml:"personLogs"`
}

// TitleBlockConfig mirrors the title block section.
type TitleBlockConfig struct {
	Header    string `yaml:"header"`
	Subheader string `yaml:"subheader"`
	Date      string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// ContactConfig is one contact info entry.
type ContactConfig struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ExecSummary mirrors the executive summary section.
type ExecSummary struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// StaffingConfig is one staffing entry.
type StaffingConfig struct {
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	StartDate string `yaml:"startDate"`
}

// PersonLogsConfig titles the per-person log section and optionally
// restricts the columns rendered for every log sheet.
type PersonLogsConfig struct {
	Title   string   `yaml:"title"`
	Columns []string `yaml:"columns"`
}

// Validate checks enumerations, ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.workbook", c.Input.Workbook, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"template.name", c.Template.Name, MaxNameLength},
		{"template.assetPath", c.Template.AssetPath, MaxPathLength},
		{"template.style", c.Template.Style, MaxNameLength},
		{"template.leftDelim", c.Template.LeftDelim, MaxDelimLength},
		{"template.rightDelim", c.Template.RightDelim, MaxDelimLength},
		{"engine.latexBin", c.Engine.LaTeXBin, MaxPathLength},
		{"sheets.configPrefix", c.Sheets.ConfigPrefix, MaxNameLength},
		{"sheets.summary", c.Sheets.Summary, MaxNameLength},
		{"sections.titleBlock.header", c.Sections.TitleBlock.Header, MaxHeaderLength},
		{"sections.titleBlock.subheader", c.Sections.TitleBlock.Subheader, MaxHeaderLength},
		{"sections.titleBlock.date", c.Sections.TitleBlock.Date, MaxDateLength},
		{"sections.execSummary.title", c.Sections.ExecSummary.Title, MaxTitleLength},
		{"sections.execSummary.body", c.Sections.ExecSummary.Body, MaxBodyLength},
		{"sections.taskSummaryTitle", c.Sections.TaskSummaryTitle, MaxTitleLength},
		{"sections.personLogs.title", c.Sections.PersonLogs.Title, MaxTitleLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateTemplate(); err != nil {
		return err
	}
	if c.Input.Month != "" {
		if _, err := dateutil.ParseMonth(c.Input.Month, time.Now()); err != nil {
			return fmt.Errorf("input.month: %w", err)
		}
	}
	return c.validateSections()
}

func (c *Config) validateEngine() error {
	switch strings.ToLower(c.Engine.Name) {
	case "", EngineLaTeX, EngineChrome:
	default:
		return fmt.Errorf("%w: engine.name %q (must be %s or %s)", ErrInvalidValue, c.Engine.Name, EngineLaTeX, EngineChrome)
	}
	if c.Engine.Passes < 0 || c.Engine.Passes > MaxPasses {
		return fmt.Errorf("%w: engine.passes must be between 0 (default) and %d, got %d", ErrInvalidValue, MaxPasses, c.Engine.Passes)
	}
	_, err := c.Engine.TimeoutDuration()
	return err
}

func (c *Config) validateTemplate() error {
	left, right := c.Template.LeftDelim, c.Template.RightDelim
	if (left == "") != (right == "") {
		return fmt.Errorf("%w: template.leftDelim and template.rightDelim must be set together", ErrInvalidValue)
	}
	if left != "" && left == right {
		return fmt.Errorf("%w: template delimiters must differ, got %q twice", ErrInvalidValue, left)
	}
	return nil
}

func (c *Config) validateSections() error {
	s := &c.Sections
	switch strings.ToLower(s.Source) {
	case "", SourceWorkbook, SourceConfig:
	default:
		return fmt.Errorf("%w: sections.source %q (must be %s or %s)", ErrInvalidValue, s.Source, SourceWorkbook, SourceConfig)
	}

	if strings.HasPrefix(strings.ToLower(s.TitleBlock.Date), "auto") {
		if _, err := dateutil.ResolveDate(s.TitleBlock.Date, time.Now()); err != nil {
			return fmt.Errorf("sections.titleBlock.date: %w", err)
		}
	}

	if len(s.ContactInfo) > MaxContactEntries {
		return fmt.Errorf("%w: sections.contactInfo has %d entries (max %d)", ErrInvalidValue, len(s.ContactInfo), MaxContactEntries)
	}
	for i, e := range s.ContactInfo {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("%w: sections.contactInfo[%d].key is required", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("sections.contactInfo[%d].key", i), e.Key, MaxKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("sections.contactInfo[%d].value", i), e.Value, MaxValueLength); err != nil {
			return err
		}
	}

	if len(s.Staffing) > MaxStaffingEntries {
		return fmt.Errorf("%w: sections.staffing has %d entries (max %d)", ErrInvalidValue, len(s.Staffing), MaxStaffingEntries)
	}
	for i, e := range s.Staffing {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Role) == "" {
			return fmt.Errorf("%w: sections.staffing[%d] needs name and role", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("sections.staffing[%d].name", i), e.Name, MaxPersonLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("sections.staffing[%d].role", i), e.Role, MaxPersonLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("sections.staffing[%d].startDate", i), e.StartDate, MaxDateLength); err != nil {
			return err
		}
	}

	if len(s.PersonLogs.Columns) > MaxColumns {
		return fmt.Errorf("%w: sections.personLogs.columns has %d entries (max %d)", ErrInvalidValue, len(s.PersonLogs.Columns), MaxColumns)
	}
	for i, col := range s.PersonLogs.Columns {
		if err := validateFieldLength(fmt.Sprintf("sections.personLogs.columns[%d]", i), col, MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// UsesConfigSections reports whether sections come from the config file.
func (c *Config) UsesConfigSections() bool {
	return strings.EqualFold(c.Sections.Source, SourceConfig)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{Name: "default", Style: "default"},
		Engine:   EngineConfig{Name: EngineLaTeX, LaTeXBin: "pdflatex", Passes: 1},
		Sheets:   SheetsConfig{ConfigPrefix: "config_"},
		Sections: SectionsConfig{Source: SourceWorkbook},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, $XDG_CONFIG_HOME/go-xlsx2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
