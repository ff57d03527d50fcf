package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads the embedded report templates stored under name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := "templates/" + name + "/"
	tex, texErr := templates.ReadFile(dir + LaTeXFile)
	html, htmlErr := templates.ReadFile(dir + HTMLFile)
	if errors.Is(texErr, fs.ErrNotExist) && errors.Is(htmlErr, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}

	return &TemplateSet{
		Name:  name,
		LaTeX: string(tex),
		HTML:  string(html),
	}, nil
}

// TemplateSetNames lists the embedded template sets in lexical order.
func (e *EmbeddedLoader) TemplateSetNames() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
