package pptx

import (
	"fmt"
	"strings"
)

// Color is an RGB hex value without the leading '#', e.g. "1F3864".
// The zero value means "inherit".
type Color string

// Common colors.
const (
	White Color = "FFFFFF"
	Black Color = "000000"
)

// ParseColor accepts "RRGGBB" or "#RRGGBB" (case-insensitive).
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return Color(strings.ToUpper(s)), nil
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool {
	return c == ""
}

func (c Color) hex() string {
	if c == "" {
		return string(Black)
	}
	return string(c)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
