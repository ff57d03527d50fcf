package xlsx2pdf

// Notes:
// - chromeCompiler is tested with a mock renderer; no browser is launched.
// - rodRenderer is only exercised on paths that return before launching.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	CalledOpts *pdfOptions
	Content    string
	Closed     bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil { // #nosec G304 -- test temp file
		m.Content = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestChromeCompiler_Compile
// ---------------------------------------------------------------------------

func TestChromeCompiler_Compile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>Report</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 fake pdf content")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: ErrPageLoad},
			wantErr: ErrPageLoad,
		},
		{
			name: "unicode content succeeds",
			html: "<html><body>Équipe opérations</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 unicode")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := &pdfOptions{FooterText: "Ops"}
			c := &chromeCompiler{renderer: tt.mock, opts: opts}

			pdf, err := c.Compile(context.Background(), tt.html)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Compile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if string(pdf) != string(tt.mock.Result) {
				t.Errorf("pdf = %q, want %q", pdf, tt.mock.Result)
			}
			if !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("renderer got %q, want an .html path", tt.mock.CalledWith)
			}
			if tt.mock.Content != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.Content, tt.html)
			}
			if tt.mock.CalledOpts != opts {
				t.Error("pdf options not passed through")
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Error("temp HTML file not removed")
			}
		})
	}
}

func TestChromeCompiler_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	c := &chromeCompiler{renderer: mock}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.Closed {
		t.Error("renderer not closed")
	}

	if err := (&chromeCompiler{}).Close(); err != nil {
		t.Errorf("Close() with nil renderer error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer - Paths that never launch a browser
// ---------------------------------------------------------------------------

func TestRodRenderer_RenderFromFile_CancelledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderFromFile(ctx, "/tmp/none.html", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched despite cancelled context")
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second)
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Page geometry and footer
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions(&pdfOptions{FooterText: "Ops"})

	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v, want A4", *opts.PaperWidth, *opts.PaperHeight)
	}
	if *opts.MarginBottom != marginBottom {
		t.Errorf("MarginBottom = %v, want %v", *opts.MarginBottom, marginBottom)
	}
	if !opts.PrintBackground || !opts.DisplayHeaderFooter {
		t.Error("background and footer must be enabled")
	}
	if !strings.Contains(opts.FooterTemplate, "Ops - ") {
		t.Errorf("FooterTemplate = %q", opts.FooterTemplate)
	}
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    *pdfOptions
		want    []string
		notWant []string
	}{
		{
			name: "nil options show page numbers only",
			opts: nil,
			want: []string{`class="pageNumber"`, `class="totalPages"`},
		},
		{
			name:    "empty text has no separator",
			opts:    &pdfOptions{},
			want:    []string{`class="pageNumber"`},
			notWant: []string{" - "},
		},
		{
			name:    "text is HTML-escaped",
			opts:    &pdfOptions{FooterText: "R&D <Ops>"},
			want:    []string{"R&amp;D &lt;Ops&gt; - "},
			notWant: []string{"<Ops>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildFooterTemplate(tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("footer missing %q: %s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("footer should not contain %q: %s", nw, got)
				}
			}
		})
	}
}
