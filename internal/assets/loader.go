package assets

// AssetLoader defines the contract for loading CSS styles and report templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the report templates stored under name.
	// Returns ErrTemplateSetNotFound if neither template exists.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
