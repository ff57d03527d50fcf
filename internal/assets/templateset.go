package assets

import "fmt"

// Format identifies the kind of template source inside a TemplateSet.
type Format string

const (
	FormatLaTeX Format = "latex"
	FormatHTML  Format = "html"
)

// File names inside a template set directory.
const (
	LaTeXFile = "report.tex"
	HTMLFile  = "report.html"
)

// TemplateSet holds the report templates for one named layout.
type TemplateSet struct {
	Name  string // Identifier (name or directory path)
	LaTeX string // report.tex content, "" if absent
	HTML  string // report.html content, "" if absent
}

// Source returns the template source for the given format.
func (ts *TemplateSet) Source(f Format) (string, error) {
	var src, file string
	switch f {
	case FormatLaTeX:
		src, file = ts.LaTeX, LaTeXFile
	case FormatHTML:
		src, file = ts.HTML, HTMLFile
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrIncompleteTemplateSet, f)
	}
	if src == "" {
		return "", fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, ts.Name, file)
	}
	return src, nil
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
