// Package assets provides report templates and CSS styles for PDF generation.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in report)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding one template set while keeping the defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS for the chrome engine
//	└── templates/
//	    └── {name}/
//	        ├── report.tex       # LaTeX source template (<< >> delimiters)
//	        └── report.html      # HTML template for the chrome engine
//
// A template set needs at least one of the two files. Asking a set for a
// format it does not carry returns ErrIncompleteTemplateSet.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
