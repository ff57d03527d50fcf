package assets

import (
	"errors"
	"slices"
)

// AssetResolver serves report templates and styles from an optional
// --asset-path directory, falling back to the embedded defaults for any name
// the directory does not provide.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without an asset path
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only; a non-empty one must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle returns the CSS for the chrome engine.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return customFirst(r, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplateSet returns the report templates stored under name. A set found
// in the asset directory is used as is, even when it carries only one engine's
// template; the missing one is then reported as ErrIncompleteTemplateSet later.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return customFirst(r, func(l AssetLoader) (*TemplateSet, error) { return l.LoadTemplateSet(name) })
}

// TemplateSetNames lists every template set that LoadTemplateSet can find,
// default first and the rest in lexical order.
func (r *AssetResolver) TemplateSetNames() []string {
	names := r.embedded.TemplateSetNames()
	if r.custom != nil {
		names = append(names, r.custom.TemplateSetNames()...)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	if i := slices.Index(names, DefaultTemplateSetName); i > 0 {
		names = slices.Insert(slices.Delete(names, i, i+1), 0, DefaultTemplateSetName)
	}
	return names
}

// customFirst tries the asset directory, then the embedded assets. Only a
// not-found result falls through: invalid names and read errors are returned.
func customFirst[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil || !isNotFoundError(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
