// Package render draws artworks to raster (PNG) and vector (SVG) outputs.
package render

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor converts a "#rgb" or "#rrggbb" string to an NRGBA color.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		// Expand shorthand: #abc -> #aabbcc
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// darken returns the color scaled toward black, used for rectangle borders.
func darken(c color.NRGBA, factor float64) color.NRGBA {
	if factor < 0 {
		factor = 0
	}
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
