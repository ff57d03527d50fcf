package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateAssetName checks that a template set or style name can be joined
// onto a base directory. Names arrive from --template, --style and the config
// file, so anything that could leave the directory, pick another extension or
// read as a flag is rejected with ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q starts with a dash", ErrInvalidAssetName, name)
	case strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0:
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidAssetName, name)
	}
	return nil
}
