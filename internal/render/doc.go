// Package render binds a report to a template and produces document source.
//
// LaTeX sources are rendered with text/template using "<<" and ">>" as
// delimiters so that TeX braces need no escaping. HTML sources are rendered
// with html/template and receive the CSS style as a <style> block.
//
// Both renderers see the same data (see Bindings) and share the cell and
// columns helpers. The latex helper applies the LaTeX escaper; markdown is
// only available to HTML templates.
package render
