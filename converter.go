package xlsx2pdf

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-xlsx2pdf/internal/assets"
	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/fileutil"
	"github.com/alnah/go-xlsx2pdf/internal/render"
	"github.com/alnah/go-xlsx2pdf/internal/sections"
	"github.com/alnah/go-xlsx2pdf/internal/table"
	"github.com/alnah/go-xlsx2pdf/internal/workbook"
	"github.com/alnah/go-xlsx2pdf/internal/yamlutil"
)

// Compile-time interface implementation checks.
var (
	_ compiler           = (*latexCompiler)(nil)
	_ compiler           = (*chromeCompiler)(nil)
	_ pdfRenderer        = (*rodRenderer)(nil)
	_ CommandRunner      = (*ExecRunner)(nil)
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = (*publicToInternalAdapter)(nil)
)

// Converter orchestrates the workbook-to-PDF pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter using EngineChrome holds one browser and is not safe for
// concurrent Convert calls.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	templates         *assets.TemplateSet
	source            string // template source for the selected engine
	style             string // CSS for EngineChrome
	runner            CommandRunner
	compiler          compiler
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithTemplate, WithAssetPath).
// Returns error if the engine is unknown or the template set cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:       EngineLaTeX,
			templateName: DefaultTemplateSet,
			timeout:      defaultTimeout,
			logger:       zap.NewNop(),
			now:          time.Now,
			latexBin:     defaultLaTeXBin,
			passes:       defaultPasses,
			jobName:      defaultJobName,
		},
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	engine, err := ParseEngine(string(c.cfg.engine))
	if err != nil {
		return nil, err
	}
	c.cfg.engine = engine

	if c.cfg.passes < 1 || c.cfg.passes > MaxPasses {
		return nil, fmt.Errorf("%w: %d (must be 1 to %d)", ErrInvalidPasses, c.cfg.passes, MaxPasses)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.loadTemplates(); err != nil {
		return nil, err
	}

	if c.cfg.engine == EngineChrome {
		if err := c.resolveStyle(); err != nil {
			return nil, err
		}
	}

	// Create compiler if not injected (e.g., by tests)
	if c.compiler == nil {
		c.compiler = c.newCompiler()
	}

	return c, nil
}

// loadTemplates loads the template set and picks the source for the engine.
func (c *Converter) loadTemplates() error {
	ts := c.cfg.templateSet
	if ts == nil {
		var err error
		ts, err = c.assetLoader.LoadTemplateSet(c.cfg.templateName)
		if err != nil {
			return fmt.Errorf("loading template set %q: %w", c.cfg.templateName, convertAssetError(err))
		}
	}

	format := assets.FormatLaTeX
	if c.cfg.engine == EngineChrome {
		format = assets.FormatHTML
	}
	src, err := ts.Source(format)
	if err != nil {
		return convertAssetError(err)
	}

	c.templates = ts
	c.source = src
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.style = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.style = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.style = css
	return nil
}

func (c *Converter) newCompiler() compiler {
	if c.cfg.engine == EngineChrome {
		return newChromeCompiler(c.cfg.timeout)
	}
	runner := c.runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &latexCompiler{
		runner:  runner,
		bin:     c.cfg.latexBin,
		passes:  c.cfg.passes,
		workDir: c.cfg.workDir,
		jobName: c.cfg.jobName,
		keepAux: c.cfg.keepAux,
		debug:   c.cfg.debug,
		logger:  c.cfg.logger,
	}
}

// Engine returns the engine this converter compiles with.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Convert runs the full pipeline and returns the rendered source and the PDF.
// The context is used for cancellation; the converter timeout bounds the run.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	// Month is checked before any workbook I/O.
	month, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	log := c.cfg.logger
	start := time.Now()

	wb, err := c.openWorkbook(input)
	if err != nil {
		return nil, err
	}
	log.Debug("workbook loaded",
		zap.String("workbook", input.Workbook),
		zap.Strings("sheets", wb.Names()),
		zap.Duration("elapsed", time.Since(start)))

	if err := c.checkSummarySheet(wb); err != nil {
		return nil, err
	}

	sheets, err := normalizeSheets(wb)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := sections.Split(sheets, sections.Options{
		ConfigPrefix:     c.cfg.configPrefix,
		SummarySheet:     c.cfg.summarySheet,
		Month:            month,
		Provider:         c.cfg.provider,
		TaskSummaryTitle: c.cfg.taskSummaryTitle,
		PersonLogs:       c.cfg.personLogs,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting sections: %w", err)
	}
	c.logReport(report, month)

	if c.cfg.debug != nil {
		if err := c.dump(report); err != nil {
			return nil, fmt.Errorf("writing debug dump: %w", err)
		}
	}

	renderStart := time.Now()
	source, err := c.render(ctx, report, month)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	log.Debug("template rendered",
		zap.String("template", c.templates.Name),
		zap.Int("bytes", len(source)),
		zap.Duration("elapsed", time.Since(renderStart)))

	res := &Result{
		Engine: c.cfg.engine,
		Source: []byte(source),
		Report: report,
	}

	if input.SourceOnly {
		return res, nil
	}

	compileStart := time.Now()
	pdf, err := c.compiler.Compile(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("compiling PDF: %w", err)
	}
	log.Debug("PDF compiled",
		zap.String("engine", string(c.cfg.engine)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(compileStart)))

	res.PDF = pdf
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.compiler != nil {
		return c.compiler.Close()
	}
	return nil
}

// validateInput checks the input and resolves the month filter.
func (c *Converter) validateInput(input Input) (*dateutil.Month, error) {
	if input.Workbook == "" && input.Reader == nil {
		return nil, ErrNoWorkbook
	}
	if input.Month == "" {
		return nil, nil
	}
	return dateutil.ParseMonth(input.Month, c.cfg.now())
}

func (c *Converter) openWorkbook(input Input) (*workbook.Workbook, error) {
	if input.Reader != nil {
		return workbook.Read(input.Reader)
	}
	return workbook.Open(input.Workbook)
}

// checkSummarySheet fails before normalization when a configured summary sheet
// is not in the workbook, naming the sheets that are.
func (c *Converter) checkSummarySheet(wb *workbook.Workbook) error {
	name := c.cfg.summarySheet
	if name == "" {
		return nil
	}
	if _, ok := wb.Sheet(name); !ok {
		return fmt.Errorf("%w: sheet %q does not exist (sheets: %s)",
			ErrNoSummarySheet, name, strings.Join(wb.Names(), ", "))
	}
	return nil
}

// normalizeSheets normalizes every sheet's column labels once.
func normalizeSheets(wb *workbook.Workbook) ([]sections.Sheet, error) {
	sheets := make([]sections.Sheet, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		t, err := table.Normalize(s.Table)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		sheets = append(sheets, sections.Sheet{Name: s.Name, Table: t})
	}
	return sheets, nil
}

func (c *Converter) logReport(r *Report, month *dateutil.Month) {
	log := c.cfg.logger
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	fields := []zap.Field{
		zap.String("summary_sheet", r.SummarySheet),
		zap.Int("summary_rows", len(r.Summary)),
		zap.Int("log_sheets", len(r.Logs)),
		zap.Int("contacts", r.ContactInfo.Len()),
		zap.Int("staff", len(r.Staffing)),
	}
	if month != nil {
		fields = append(fields, zap.String("month_prefix", month.Prefix()))
	}
	log.Debug("sections extracted", fields...)

	for _, l := range r.Logs {
		log.Debug("log sheet", zap.String("sheet", l.Name), zap.Int("records", len(l.Records)))
	}
}

// dump writes the extracted data as YAML documents to the debug writer.
func (c *Converter) dump(r *Report) error {
	w := c.cfg.debug
	if err := yamlutil.Dump(w, "summary", r.Summary); err != nil {
		return err
	}
	if err := yamlutil.Dump(w, "all_logs", r.Logs); err != nil {
		return err
	}
	return yamlutil.Dump(w, "sections", r.Sections)
}

func (c *Converter) render(ctx context.Context, r *Report, month *dateutil.Month) (string, error) {
	data := render.Bindings(r, month)
	if c.cfg.engine == EngineChrome {
		if cc, ok := c.compiler.(*chromeCompiler); ok {
			cc.opts = &pdfOptions{FooterText: r.TitleBlock.Header}
		}
		return render.HTML(ctx, c.templates.Name+"/"+assets.HTMLFile, c.source, data, c.style)
	}
	return render.LaTeX(ctx, c.templates.Name+"/"+assets.LaTeXFile, c.source, data, c.cfg.delims)
}
