package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Render a workbook into a PDF report (default)")
	fmt.Fprintln(w, "  doctor      Check pdflatex, Chrome and the temp directory")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'xlsx2pdf help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2pdf build [workbook] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a workbook into a PDF report.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  workbook    .xlsx file (default input.workbook, then dummy.xlsx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default output.pdf)")
	fmt.Fprintln(w, "  -m, --month <name>        Keep log rows from this month only, e.g. july")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --summary-sheet <s>   Summary sheet (default first non-config sheet)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <s>          PDF engine: latex (default), chrome")
	fmt.Fprintln(w, "      --latex-bin <path>    LaTeX executable (default pdflatex)")
	fmt.Fprintln(w, "      --passes <n>          LaTeX runs (1-5)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Templates:")
	fmt.Fprintln(w, "      --template <name>     Template set name (default \"default\")")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with templates/<name>/ and styles/")
	fmt.Fprintln(w, "      --style <s>           CSS name or file path (chrome engine)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Debugging:")
	fmt.Fprintln(w, "      --tex                 Also write the rendered source next to the PDF")
	fmt.Fprintln(w, "      --source-only         Write the rendered source only, skip the PDF")
	fmt.Fprintln(w, "      --keep-aux            Keep LaTeX aux and log files next to the PDF")
	fmt.Fprintln(w, "      --debug               Dump extracted data and compiler output to stderr")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show stage timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  XLSX2PDF_CONFIG, XLSX2PDF_WORKBOOK, XLSX2PDF_OUTPUT, XLSX2PDF_TEMPLATE,")
	fmt.Fprintln(w, "  XLSX2PDF_ENGINE, XLSX2PDF_TIMEOUT, XLSX2PDF_MONTH, XLSX2PDF_LATEX_BIN")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a PDF engine is available and the temp directory is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: xlsx2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: xlsx2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
