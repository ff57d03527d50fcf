package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver == nil {
			t.Fatal("NewAssetResolver() returned nil")
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("loads embedded style", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got == "" {
			t.Error("LoadStyle() returned empty content")
		}
	})

	t.Run("returns error for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_LoadStyle_CustomWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stylesDir := filepath.Join(tmpDir, "styles")
	if err := os.MkdirAll(stylesDir, 0755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	// Create a custom style
	customCSS := "/* custom style */"
	if err := os.WriteFile(filepath.Join(stylesDir, "mystyle.css"), []byte(customCSS), 0644); err != nil {
		t.Fatalf("failed to write CSS file: %v", err)
	}

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("loads custom style when available", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("mystyle")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != customCSS {
			t.Errorf("LoadStyle() = %q, want %q", got, customCSS)
		}
	})

	t.Run("falls back to embedded when custom not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got == "" {
			t.Error("LoadStyle() returned empty content from fallback")
		}
	})

	t.Run("returns error when neither has style", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_LoadStyle_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	stylesDir := filepath.Join(tmpDir, "styles")
	if err := os.MkdirAll(stylesDir, 0755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	// Create a custom style with the same name as an embedded one
	customCSS := "/* CUSTOM OVERRIDE of default */"
	if err := os.WriteFile(filepath.Join(stylesDir, "default.css"), []byte(customCSS), 0644); err != nil {
		t.Fatalf("failed to write CSS file: %v", err)
	}

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	got, err := resolver.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got != customCSS {
		t.Errorf("LoadStyle() = %q, want custom override %q", got, customCSS)
	}
}

func TestAssetResolver_LoadTemplateSet_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("loads embedded template set", func(t *testing.T) {
		t.Parallel()

		ts, err := resolver.LoadTemplateSet("default")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.LaTeX == "" {
			t.Error("LoadTemplateSet() returned empty LaTeX template")
		}
		if ts.HTML == "" {
			t.Error("LoadTemplateSet() returned empty HTML template")
		}
	})

	t.Run("returns error for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTemplateSet("nonexistent-xyz")
		if !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}

func TestAssetResolver_LoadTemplateSet_CustomWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	customTeX := `\documentclass{report}`
	writeTemplateSet(t, tmpDir, "custom", map[string]string{LaTeXFile: customTeX})

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("loads custom template set when available", func(t *testing.T) {
		t.Parallel()

		ts, err := resolver.LoadTemplateSet("custom")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.LaTeX != customTeX {
			t.Errorf("LoadTemplateSet() LaTeX = %q, want %q", ts.LaTeX, customTeX)
		}
	})

	t.Run("falls back to embedded when custom not found", func(t *testing.T) {
		t.Parallel()

		ts, err := resolver.LoadTemplateSet("default")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.LaTeX == "" {
			t.Error("LoadTemplateSet() returned empty LaTeX from fallback")
		}
	})
}

func TestAssetResolver_LoadTemplateSet_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	customTeX := "% CUSTOM OVERRIDE"
	writeTemplateSet(t, tmpDir, "default", map[string]string{LaTeXFile: customTeX})

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	ts, err := resolver.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if ts.LaTeX != customTeX {
		t.Errorf("LoadTemplateSet() LaTeX = %q, want custom override %q", ts.LaTeX, customTeX)
	}
	if ts.HTML != "" {
		t.Errorf("custom set should not be merged with embedded, got HTML %q", ts.HTML)
	}
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("style validation error not fallen back", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("../secret")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName (no fallback)", err)
		}
	})

	t.Run("template set validation error not fallen back", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTemplateSet("../secret")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrInvalidAssetName (no fallback)", err)
		}
	})
}

func TestAssetResolver_TemplateSetNames(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatal(err)
		}
		names := resolver.TemplateSetNames()
		if len(names) == 0 || names[0] != DefaultTemplateSetName {
			t.Errorf("TemplateSetNames() = %v, want %q first", names, DefaultTemplateSetName)
		}
	})

	t.Run("custom sets merged after default", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeTemplateSet(t, tmpDir, "monthly", map[string]string{LaTeXFile: "tex"})
		writeTemplateSet(t, tmpDir, "annual", map[string]string{HTMLFile: "<html></html>"})
		writeTemplateSet(t, tmpDir, DefaultTemplateSetName, map[string]string{LaTeXFile: "override"})
		if err := os.MkdirAll(filepath.Join(tmpDir, "templates", "empty"), 0o750); err != nil {
			t.Fatal(err)
		}

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{DefaultTemplateSetName, "annual", "monthly"}
		if diff := cmp.Diff(want, resolver.TemplateSetNames()); diff != "" {
			t.Errorf("TemplateSetNames() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("asset path without templates directory", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{DefaultTemplateSetName}, resolver.TemplateSetNames()); diff != "" {
			t.Errorf("TemplateSetNames() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAssetResolver_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()

	var _ AssetLoader = (*AssetResolver)(nil)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrStyleNotFound", ErrStyleNotFound, true},
		{"ErrTemplateSetNotFound", ErrTemplateSetNotFound, true},
		{"wrapped ErrStyleNotFound", errors.New("wrap: " + ErrStyleNotFound.Error()), false},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrAssetRead", ErrAssetRead, false},
		{"generic error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := isNotFoundError(tt.err)
			if got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
