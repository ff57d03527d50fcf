package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds template and style selection flags.
type assetFlags struct {
	template  string // Template set name
	assetPath string // Override asset directory
	style     string // CSS name or path (chrome engine)
}

// engineFlags holds PDF engine flags.
type engineFlags struct {
	name     string
	latexBin string
	passes   int
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	tex        bool // Write the rendered source alongside the PDF
	sourceOnly bool // Write the rendered source only, skip compilation
	keepAux    bool // Keep pdflatex aux files next to the PDF
	debug      bool // Dump extracted data and compiler output
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common       commonFlags
	output       string
	month        string
	timeout      string
	summarySheet string
	engine       engineFlags
	assets       assetFlags
	outputMode   outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show stage timings")
}

// addEngineFlags adds PDF engine flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.name, "engine", "e", "", "PDF engine: latex, chrome")
	fs.StringVar(&f.latexBin, "latex-bin", "", "LaTeX executable (default pdflatex)")
	fs.IntVar(&f.passes, "passes", 0, "LaTeX runs (1-5, default 1)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path (chrome engine)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.tex, "tex", false, "also write the rendered source next to the PDF")
	fs.BoolVar(&f.sourceOnly, "source-only", false, "write the rendered source only, skip the PDF")
	fs.BoolVar(&f.keepAux, "keep-aux", false, "keep LaTeX aux and log files next to the PDF")
	fs.BoolVar(&f.debug, "debug", false, "dump extracted data and compiler output to stderr")
	fs.BoolVar(&f.debug, "logging", false, "alias for --debug")
	_ = fs.MarkHidden("logging")
}

// newBuildFlagSet registers every build flag on a fresh FlagSet.
// Shared by flag parsing and completion generation.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default output.pdf)")
	fs.StringVarP(&f.month, "month", "m", "", "only keep log rows from this month, e.g. july")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.summarySheet, "summary-sheet", "", "summary sheet name (default first non-config sheet)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage goes to usageOut when -h is given.
func parseBuildFlags(args []string, usageOut io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printBuildUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
