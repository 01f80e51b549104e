package model

import "regexp"

// Sanitization bounds for externally supplied generation parameters.
const (
	MinRectCount = 0
	MaxRectCount = 500
	MinRectSize  = 1
	MaxRectSize  = 400
)

// DefaultColor is the fill used when the interpreter supplies no usable color.
const DefaultColor = "#4caf50"

// DefaultBackground is the canvas background color.
const DefaultBackground = "#1a1a2e"

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether s is a 3- or 6-digit hex color.
func ValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// GenerationConfig holds the sanitized parameters for one packing run.
// Count, MinSize and MaxSize are guaranteed to be within bounds after
// Sanitize; the packer does not re-validate them.
type GenerationConfig struct {
	Color   string `json:"color"`
	Count   int    `json:"count"`
	MinSize int    `json:"min_size"`
	MaxSize int    `json:"max_size"`
	Zones   []Zone `json:"zones,omitempty"`
}

// DefaultConfig returns the configuration used when no prompt has been
// interpreted yet.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		Color:   DefaultColor,
		Count:   40,
		MinSize: 12,
		MaxSize: 64,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sanitize normalizes a configuration coming from an external source.
// Invalid colors fall back to DefaultColor, counts and sizes are clamped,
// swapped size bounds are corrected, and zones with unusable geometry or
// colors are dropped. The result always satisfies the packer's contract.
func (c GenerationConfig) Sanitize() GenerationConfig {
	out := c

	if !ValidHexColor(out.Color) {
		out.Color = DefaultColor
	}
	out.Count = clampInt(out.Count, MinRectCount, MaxRectCount)
	out.MinSize = clampInt(out.MinSize, MinRectSize, MaxRectSize)
	out.MaxSize = clampInt(out.MaxSize, MinRectSize, MaxRectSize)
	if out.MinSize > out.MaxSize {
		out.MinSize, out.MaxSize = out.MaxSize, out.MinSize
	}

	var zones []Zone
	for _, z := range c.Zones {
		if !z.Valid() || !ValidHexColor(z.Color) {
			continue
		}
		if z.ID == "" {
			switch z.Shape {
			case ZoneCircle:
				z = NewCircleZone(z.CX, z.CY, z.Radius, z.Color)
			case ZoneRectangle:
				z = NewRectZone(z.X, z.Y, z.W, z.H, z.Color)
			}
		}
		zones = append(zones, z)
	}
	out.Zones = zones

	return out
}
