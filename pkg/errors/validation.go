package errors

import (
	"regexp"
	"unicode"
)

// ValidateTileName validates a tile identity for use in instance files and
// storage keys. Names are conservative on purpose: short, printable, no
// separators that could leak into cache keys or file paths.
func ValidateTileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTile, "tile name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidTile, "tile name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTile, "tile name contains whitespace or control characters")
		}
		if r == '/' || r == '\\' || r == ':' || r == '|' {
			return New(ErrCodeInvalidTile, "tile name contains reserved character %q", r)
		}
	}
	return nil
}

// hexColorRegex matches "#rgb" and "#rrggbb" colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a display color. Colors double as marker-matching
// identities, so an empty color is rejected as well.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidTile, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidTile, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}
