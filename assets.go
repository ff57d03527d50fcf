package xlsx2pdf

import (
	"errors"

	"github.com/alnah/go-xlsx2pdf/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader defines the contract for loading CSS styles and report templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads report.tex and report.html by set name.
	// Returns ErrTemplateNotFound if the set doesn't exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the report templates of one layout. A set needs only
// the template of the engine it is used with.
type TemplateSet struct {
	Name  string // Identifier (name or path)
	LaTeX string // report.tex content
	HTML  string // report.html content
}

// NewTemplateSet creates a TemplateSet from LaTeX and HTML template content.
// This is a convenience constructor for users providing templates directly.
func NewTemplateSet(name, latex, html string) *TemplateSet {
	return &TemplateSet{
		Name:  name,
		LaTeX: latex,
		HTML:  html,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/report.tex and report.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &TemplateSet{Name: ts.Name, LaTeX: ts.LaTeX, HTML: ts.HTML}, nil
}

// publicToInternalAdapter wraps a public AssetLoader to the internal interface.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{Name: ts.Name, LaTeX: ts.LaTeX, HTML: ts.HTML}, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
