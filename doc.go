// Package xlsx2pdf turns a spreadsheet workbook into a typeset PDF report.
//
// # Quick Start
//
// Create a converter, convert a workbook, and close when done:
//
//	conv, err := xlsx2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, xlsx2pdf.Input{
//	    Workbook: "report.xlsx",
//	    Month:    "july",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result carries the PDF, the rendered template source (result.Source)
// and the extracted report. Set Input.SourceOnly to skip compilation.
//
// # Workbook Layout
//
// Every sheet is a table whose first row is the header. Column labels are
// normalized (trimmed, lowercased, spaces to underscores) before use.
//
//   - Sheets named with the config prefix ("config_" by default) configure
//     the report: config_title_block, config_contact_info,
//     config_exec_summary and config_staffing_info.
//   - The first other sheet is the summary, passed through unfiltered.
//   - Every remaining sheet is a per-person activity log. With a month
//     filter, only rows whose date column starts with YYYYMM are kept.
//
// # Conversion Pipeline
//
//  1. Load the workbook (excelize)
//  2. Normalize column labels per sheet
//  3. Extract sections and split summary from logs
//  4. Render the template set (LaTeX or HTML)
//  5. Compile with pdflatex or headless Chrome (go-rod)
//  6. Remove auxiliary files
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := xlsx2pdf.NewConverter(
//	    xlsx2pdf.WithEngine(xlsx2pdf.EngineChrome),
//	    xlsx2pdf.WithTemplate("quarterly"),
//	    xlsx2pdf.WithAssetPath("/path/to/custom/assets"),
//	    xlsx2pdf.WithLogger(logger),
//	)
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── quarterly.css
//	└── templates/
//	    └── quarterly/
//	        ├── report.tex
//	        └── report.html
//
// Custom assets take precedence; missing ones fall back to the embedded
// defaults.
//
// # Templates
//
// Templates see a fixed set of bindings: summary, summary_columns, all_logs,
// log_sheets, title_block, contact_info, contact_entries, exec_summary,
// task_summary_title, staffing_info, person_logs_config and month. LaTeX
// templates use << and >> as action delimiters and the latex function to
// escape values; HTML templates use html/template.
//
// # Error Handling
//
// Errors are wrapped sentinels; check them with errors.Is:
//
//	if errors.Is(err, xlsx2pdf.ErrMissingColumns) { ... }
//	var ce *xlsx2pdf.CompileError
//	if errors.As(err, &ce) { fmt.Println(strings.Join(ce.LogTail, "\n")) }
package xlsx2pdf
