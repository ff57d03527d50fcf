package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	xlsx2pdf "github.com/alnah/go-xlsx2pdf"
	"github.com/alnah/go-xlsx2pdf/internal/assets"
	"github.com/alnah/go-xlsx2pdf/internal/config"
	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/fileutil"
	"github.com/alnah/go-xlsx2pdf/internal/hints"
	"github.com/alnah/go-xlsx2pdf/internal/sections"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlag    = errors.New("invalid flag")
	ErrUnknownCommand = errors.New("unknown command")
	ErrWriteOutput    = errors.New("failed to write output file")
)

// Fixed names used when neither flags, env nor config give one.
const (
	defaultWorkbook = "dummy.xlsx"
	defaultOutput   = "output.pdf"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// workbookExtensions are the formats excelize opens.
var workbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// buildPlan is the fully resolved build request.
type buildPlan struct {
	cfg        *config.Config
	engine     xlsx2pdf.Engine
	workbook   string
	output     string // PDF path, or source path with --source-only
	timeout    time.Duration
	sourceOnly bool
	debug      bool
}

// runBuild renders a workbook into a PDF report.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one workbook, got %d arguments", ErrInvalidFlag, len(positional))
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	plan, err := resolvePlan(flags, positional, envCfg)
	if err != nil {
		return withHints(err, plan)
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	defer func() { _ = logger.Sync() }()

	opts, err := buildOptions(plan, env, logger)
	if err != nil {
		return err
	}

	conv, err := xlsx2pdf.NewConverter(opts...)
	if err != nil {
		return withHints(err, plan)
	}
	defer func() { _ = conv.Close() }()

	start := env.Now()
	result, err := conv.Convert(ctx, xlsx2pdf.Input{
		Workbook:   plan.workbook,
		Month:      plan.cfg.Input.Month,
		SourceOnly: plan.sourceOnly,
	})
	if err != nil {
		return withHints(err, plan)
	}

	if err := writeResult(plan, result); err != nil {
		return err
	}

	if !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "Created %s (%v)\n", plan.output, env.Now().Sub(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", plan.output)
		}
	}
	return nil
}

// resolvePlan layers config file, environment and flags, then validates the
// result. The month is checked here, before the workbook is touched.
func resolvePlan(flags *buildFlags, positional []string, envCfg *envConfig) (*buildPlan, error) {
	cfgName := flags.common.config
	if cfgName == "" {
		cfgName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if cfgName != "" {
		var err error
		cfg, err = config.LoadConfig(cfgName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return &buildPlan{cfg: cfg}, err
	}
	engine, err := xlsx2pdf.ParseEngine(cfg.Engine.Name)
	if err != nil {
		return &buildPlan{cfg: cfg}, err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return &buildPlan{cfg: cfg}, err
	}

	plan := &buildPlan{
		cfg:        cfg,
		engine:     engine,
		workbook:   resolveWorkbookPath(positional, cfg),
		timeout:    timeout,
		sourceOnly: flags.outputMode.sourceOnly,
		debug:      flags.outputMode.debug,
	}
	plan.output = resolveOutputPath(cfg, engine, plan.sourceOnly)
	return plan, nil
}

// mergeFlags merges CLI flags into config. Flags override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.month != "" {
		cfg.Input.Month = flags.month
	}
	if flags.summarySheet != "" {
		cfg.Sheets.Summary = flags.summarySheet
	}

	// Engine
	if flags.engine.name != "" {
		cfg.Engine.Name = flags.engine.name
	}
	if flags.engine.latexBin != "" {
		cfg.Engine.LaTeXBin = flags.engine.latexBin
	}
	if flags.engine.passes != 0 {
		cfg.Engine.Passes = flags.engine.passes
	}

	// Assets
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Template.AssetPath = flags.assets.assetPath
	}
	if flags.assets.style != "" {
		cfg.Template.Style = flags.assets.style
	}

	// Output mode
	if flags.outputMode.tex {
		cfg.Output.KeepSource = true
	}
	if flags.outputMode.keepAux {
		cfg.Output.KeepAux = true
	}
}

// resolveTimeoutWithEnv picks the conversion timeout: flag, then
// XLSX2PDF_TIMEOUT, then engine.timeout. Zero keeps the converter default.
func resolveTimeoutWithEnv(flagValue string, envTimeout time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: --timeout %q: %v", ErrInvalidFlag, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrInvalidFlag, d)
		}
		return d, nil
	}
	if envTimeout > 0 {
		return envTimeout, nil
	}
	return cfg.Engine.TimeoutDuration()
}

// resolveWorkbookPath picks the positional argument, then input.workbook,
// then dummy.xlsx.
func resolveWorkbookPath(positional []string, cfg *config.Config) string {
	if len(positional) > 0 {
		return positional[0]
	}
	if cfg.Input.Workbook != "" {
		return cfg.Input.Workbook
	}
	return defaultWorkbook
}

// resolveOutputPath returns where the main artifact goes. With sourceOnly
// the PDF extension is swapped for the engine's source extension.
func resolveOutputPath(cfg *config.Config, engine xlsx2pdf.Engine, sourceOnly bool) string {
	out := cfg.Output.Path
	if out == "" {
		out = defaultOutput
	}
	if sourceOnly {
		return sourcePath(out, engine)
	}
	return out
}

// sourcePath replaces the extension of pdfPath with the engine's source extension.
func sourcePath(pdfPath string, engine xlsx2pdf.Engine) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "." + engine.SourceExt()
}

// buildOptions turns the plan into converter options.
func buildOptions(plan *buildPlan, env *Environment, logger *zap.Logger) ([]xlsx2pdf.Option, error) {
	cfg := plan.cfg
	opts := []xlsx2pdf.Option{
		xlsx2pdf.WithEngine(plan.engine),
		xlsx2pdf.WithLogger(logger),
		xlsx2pdf.WithClock(env.Now),
		xlsx2pdf.WithConfigPrefix(cfg.Sheets.ConfigPrefix),
		xlsx2pdf.WithSummarySheet(cfg.Sheets.Summary),
		xlsx2pdf.WithTaskSummaryTitle(cfg.Sections.TaskSummaryTitle),
		xlsx2pdf.WithPersonLogs(xlsx2pdf.PersonLogsConfig{
			Title:   cfg.Sections.PersonLogs.Title,
			Columns: cfg.Sections.PersonLogs.Columns,
		}),
		xlsx2pdf.WithLaTeXBin(cfg.Engine.LaTeXBin),
	}

	if cfg.Template.Name != "" {
		opts = append(opts, xlsx2pdf.WithTemplate(cfg.Template.Name))
	}
	if cfg.Template.AssetPath != "" {
		opts = append(opts, xlsx2pdf.WithAssetPath(cfg.Template.AssetPath))
	}
	if plan.engine == xlsx2pdf.EngineChrome && cfg.Template.Style != "" {
		opts = append(opts, xlsx2pdf.WithStyle(cfg.Template.Style))
	}
	if cfg.Template.LeftDelim != "" {
		opts = append(opts, xlsx2pdf.WithDelims(cfg.Template.LeftDelim, cfg.Template.RightDelim))
	}
	if cfg.Engine.Passes > 0 {
		opts = append(opts, xlsx2pdf.WithPasses(cfg.Engine.Passes))
	}
	if plan.timeout > 0 {
		opts = append(opts, xlsx2pdf.WithTimeout(plan.timeout))
	}
	if plan.debug {
		opts = append(opts, xlsx2pdf.WithDebugWriter(env.Stderr))
	}
	if env.Runner != nil {
		opts = append(opts, xlsx2pdf.WithCommandRunner(env.Runner))
	}

	if cfg.UsesConfigSections() {
		s, err := buildSections(&cfg.Sections, env.Now())
		if err != nil {
			return nil, err
		}
		opts = append(opts, xlsx2pdf.WithSections(s))
	}

	// With --keep-aux pdflatex runs next to the output so its log and aux
	// files are left where the user can find them.
	if cfg.Output.KeepAux && plan.engine == xlsx2pdf.EngineLaTeX && !plan.sourceOnly {
		dir := filepath.Dir(plan.output)
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %w", ErrWriteOutput, dir, err)
		}
		opts = append(opts,
			xlsx2pdf.WithWorkDir(dir),
			xlsx2pdf.WithJobName(strings.TrimSuffix(filepath.Base(plan.output), filepath.Ext(plan.output))),
			xlsx2pdf.WithKeepAux(true),
		)
	}

	return opts, nil
}

// buildSections converts the sections block of the config file. Missing
// title fields take the same defaults as an empty config sheet; contact
// keys are lowercased and start dates normalized to YYYY-MM-DD.
func buildSections(sc *config.SectionsConfig, now time.Time) (*xlsx2pdf.Sections, error) {
	date, err := dateutil.ResolveDate(sc.TitleBlock.Date, now)
	if err != nil {
		return nil, fmt.Errorf("sections.titleBlock.date: %w", err)
	}

	s := &xlsx2pdf.Sections{
		TitleBlock: xlsx2pdf.TitleBlock{
			Header:    orDefault(sc.TitleBlock.Header, sections.DefaultHeader),
			Subheader: orDefault(sc.TitleBlock.Subheader, sections.DefaultSubheader),
			Date:      orDefault(date, sections.DefaultDate),
		},
		ExecSummary: xlsx2pdf.ExecSummary{
			Title: orDefault(sc.ExecSummary.Title, sections.DefaultExecSummaryTitle),
			Body:  sc.ExecSummary.Body,
		},
		Staffing: make([]xlsx2pdf.StaffingEntry, 0, len(sc.Staffing)),
	}

	for _, c := range sc.ContactInfo {
		s.ContactInfo.Set(strings.ToLower(strings.TrimSpace(c.Key)), c.Value)
	}

	for _, e := range sc.Staffing {
		start := ""
		if t, ok := dateutil.ParseDate(e.StartDate); ok {
			start = dateutil.FormatISO(t)
		}
		s.Staffing = append(s.Staffing, xlsx2pdf.StaffingEntry{
			Name:      strings.TrimSpace(e.Name),
			Role:      strings.TrimSpace(e.Role),
			StartDate: start,
		})
	}

	return s, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// writeResult writes the PDF and, when asked, the rendered source.
// Files are only written after a successful conversion.
func writeResult(plan *buildPlan, result *xlsx2pdf.Result) error {
	if err := os.MkdirAll(filepath.Dir(plan.output), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory: %w", ErrWriteOutput, err)
	}

	if plan.sourceOnly {
		return writeFile(plan.output, result.Source)
	}

	if err := writeFile(plan.output, result.PDF); err != nil {
		return err
	}
	if plan.cfg.Output.KeepSource {
		return writeFile(sourcePath(plan.output, plan.engine), result.Source)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}

// templateSetNames lists the sets reachable with the plan's asset path, or the
// embedded ones when that path is unusable.
func templateSetNames(plan *buildPlan) []string {
	assetPath := ""
	if plan != nil && plan.cfg != nil {
		assetPath = plan.cfg.Template.AssetPath
	}
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return assets.NewEmbeddedLoader().TemplateSetNames()
	}
	return resolver.TemplateSetNames()
}

// withHints appends actionable hints for the errors users can fix.
func withHints(err error, plan *buildPlan) error {
	var hint string
	var mce *xlsx2pdf.MissingColumnsError

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(configSearchPaths(err))
	case errors.Is(err, xlsx2pdf.ErrInvalidMonth):
		hint = hints.ForInvalidMonth()
	case errors.As(err, &mce):
		prefix := xlsx2pdf.DefaultConfigPrefix
		if plan != nil && plan.cfg != nil && plan.cfg.Sheets.ConfigPrefix != "" {
			prefix = plan.cfg.Sheets.ConfigPrefix
		}
		hint = hints.ForMissingColumns(prefix+mce.Section, mce.Columns)
	case errors.Is(err, xlsx2pdf.ErrTemplateNotFound):
		hint = hints.ForTemplateNotFound(templateSetNames(plan))
	case errors.Is(err, xlsx2pdf.ErrCompilerNotFound):
		bin := "pdflatex"
		if plan != nil && plan.cfg != nil && plan.cfg.Engine.LaTeXBin != "" {
			bin = plan.cfg.Engine.LaTeXBin
		}
		hint = hints.ForCompilerNotFound(bin)
	case errors.Is(err, xlsx2pdf.ErrCompile):
		hint = hints.ForCompileFailure()
	case errors.Is(err, xlsx2pdf.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// configSearchPaths extracts the "tried a, b" list from a config lookup error.
func configSearchPaths(err error) []string {
	msg := err.Error()
	i := strings.Index(msg, "tried ")
	if i < 0 {
		return nil
	}
	return strings.Split(msg[i+len("tried "):], ", ")
}
