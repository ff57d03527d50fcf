package render

import (
	htmltemplate "html/template"
	"strings"

	"github.com/alnah/go-xlsx2pdf/internal/latex"
	"github.com/alnah/go-xlsx2pdf/internal/table"
)

// Cell returns the value stored under label, matched after label
// normalization. Missing labels read as Null.
func Cell(row map[string]table.Value, label string) table.Value {
	if v, ok := row[label]; ok {
		return v
	}
	return row[table.NormalizeLabel(label)]
}

// Columns returns the configured columns that exist in sheet, in configured
// order. With nothing configured it returns sheet unchanged.
func Columns(sheet, configured []string) []string {
	if len(configured) == 0 {
		return sheet
	}
	present := make(map[string]bool, len(sheet))
	for _, c := range sheet {
		present[c] = true
	}
	out := make([]string, 0, len(configured))
	for _, c := range configured {
		if n := table.NormalizeLabel(c); present[n] {
			out = append(out, n)
		}
	}
	return out
}

// ColSpec returns a tabular column specification of n left-aligned columns,
// never fewer than one.
func ColSpec(n int) string {
	if n <= 0 {
		return "l"
	}
	return strings.Repeat("l", n)
}

func latexFuncs() map[string]any {
	return map[string]any{
		"latex":   latex.Escape,
		"cell":    Cell,
		"columns": Columns,
		"colspec": ColSpec,
	}
}

func htmlFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"cell":     Cell,
		"columns":  Columns,
		"markdown": Markdown,
	}
}
