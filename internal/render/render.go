package render

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"text/template"
)

// Delims are the action delimiters of a LaTeX template.
type Delims struct {
	Left  string
	Right string
}

// DefaultLaTeXDelims do not collide with TeX grouping braces.
var DefaultLaTeXDelims = Delims{Left: "<<", Right: ">>"}

func (d Delims) orDefault() Delims {
	if d.Left == "" || d.Right == "" {
		return DefaultLaTeXDelims
	}
	return d
}

// LaTeX renders src with text/template. Referencing a binding that does not
// exist is an error, not an empty string.
func LaTeX(ctx context.Context, name, src string, data map[string]any, delims Delims) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d := delims.orDefault()
	tmpl, err := template.New(name).
		Delims(d.Left, d.Right).
		Option("missingkey=error").
		Funcs(latexFuncs()).
		Parse(src)
	if err != nil {
		return "", newError(name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", newError(name, err)
	}
	return buf.String(), nil
}

// HTML renders src with html/template and injects css as a <style> block.
func HTML(ctx context.Context, name, src string, data map[string]any, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := htmltemplate.New(name).
		Option("missingkey=error").
		Funcs(htmlFuncs()).
		Parse(src)
	if err != nil {
		return "", newError(name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", newError(name, err)
	}
	return InjectCSS(buf.String(), css), nil
}
