package render

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdown indicates a markdown fragment could not be converted.
var ErrMarkdown = errors.New("markdown conversion failed")

// goldmark.Markdown is safe for concurrent use once built.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithXHTML(),
		// Raw HTML in cells stays escaped: WithUnsafe is not set.
	),
)

// Markdown converts a markdown fragment, typically the executive summary
// body, to HTML. Raw HTML in the input is not passed through.
func Markdown(src string) (htmltemplate.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}
	return htmltemplate.HTML(buf.String()), nil // #nosec G203 -- goldmark output without WithUnsafe
}
