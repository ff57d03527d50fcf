package xlsx2pdf

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-xlsx2pdf/internal/assets"
	"github.com/alnah/go-xlsx2pdf/internal/render"
	"github.com/alnah/go-xlsx2pdf/internal/sections"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine       Engine
	templateName string
	templateSet  *assets.TemplateSet
	styleInput   string
	assetPath    string
	timeout      time.Duration
	logger       *zap.Logger
	now          func() time.Time
	debug        io.Writer

	configPrefix     string
	summarySheet     string
	provider         sections.Provider
	taskSummaryTitle string
	personLogs       sections.PersonLogsConfig
	delims           render.Delims

	latexBin string
	passes   int
	workDir  string
	jobName  string
	keepAux  bool
}

// Defaults used when no option overrides them.
const (
	defaultTimeout  = 2 * time.Minute
	defaultLaTeXBin = "pdflatex"
	defaultPasses   = 1
	defaultJobName  = "report"

	// MaxPasses bounds WithPasses.
	MaxPasses = 5
)

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("xlsx2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the PDF engine. Defaults to EngineLaTeX.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithTemplate selects a template set by name. Defaults to "default".
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTemplateSet uses the given templates instead of loading a named set.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		if ts == nil {
			return
		}
		c.cfg.templateSet = &assets.TemplateSet{Name: ts.Name, LaTeX: ts.LaTeX, HTML: ts.HTML}
	}
}

// WithStyle sets the CSS used by the Chrome engine: a style name, a path
// to a .css file, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads templates and styles from dir, falling back to the
// embedded assets for anything it does not contain.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader uses a custom AssetLoader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithLogger sets the logger for stage timings and sheet decisions.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithClock sets the clock used to resolve the month filter's year.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.now = now
		}
	}
}

// WithDebugWriter dumps the extracted data as YAML to w before rendering
// and forwards compiler output to it.
func WithDebugWriter(w io.Writer) Option {
	return func(c *Converter) {
		c.cfg.debug = w
	}
}

// WithConfigPrefix sets the sheet-name prefix of config sheets.
// Matched case-insensitively. Defaults to "config_".
func WithConfigPrefix(prefix string) Option {
	return func(c *Converter) {
		c.cfg.configPrefix = prefix
	}
}

// WithSummarySheet names the summary sheet instead of taking the first
// non-config sheet.
func WithSummarySheet(name string) Option {
	return func(c *Converter) {
		c.cfg.summarySheet = name
	}
}

// WithSections supplies the title block, contact info, executive summary
// and staffing sections directly. Config sheets in the workbook are then
// ignored; the month filter still overrides the title date.
func WithSections(s *Sections) Option {
	return func(c *Converter) {
		c.cfg.provider = sections.StaticProvider{Supplied: s}
	}
}

// WithTaskSummaryTitle sets the heading of the summary table.
func WithTaskSummaryTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.taskSummaryTitle = title
	}
}

// WithPersonLogs sets the heading of the log section and restricts the
// columns shown for every log sheet. Empty columns show all of them.
func WithPersonLogs(cfg PersonLogsConfig) Option {
	return func(c *Converter) {
		c.cfg.personLogs = cfg
	}
}

// WithDelims sets the action delimiters of LaTeX templates.
// Defaults to "<<" and ">>".
func WithDelims(left, right string) Option {
	return func(c *Converter) {
		c.cfg.delims = render.Delims{Left: left, Right: right}
	}
}

// WithLaTeXBin sets the LaTeX compiler binary. Defaults to "pdflatex".
func WithLaTeXBin(bin string) Option {
	return func(c *Converter) {
		if bin != "" {
			c.cfg.latexBin = bin
		}
	}
}

// WithPasses sets how many times the LaTeX compiler runs (1 to MaxPasses).
// Cross references and longtable widths settle on the second pass.
func WithPasses(n int) Option {
	return func(c *Converter) {
		c.cfg.passes = n
	}
}

// WithWorkDir runs the LaTeX compiler in dir instead of a fresh temp
// directory. The directory is not removed afterwards.
func WithWorkDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.workDir = dir
	}
}

// WithJobName sets the base name of the files the LaTeX compiler writes.
// Defaults to "report".
func WithJobName(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.jobName = name
		}
	}
}

// WithKeepAux keeps the .aux, .log, .out and .toc files of a LaTeX run.
// Only useful together with WithWorkDir.
func WithKeepAux(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepAux = keep
	}
}

// WithCommandRunner replaces the process runner used by the LaTeX engine.
func WithCommandRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}
