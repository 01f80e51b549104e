package model

import "github.com/google/uuid"

// ZoneShape identifies the geometry of a color zone.
type ZoneShape string

const (
	ZoneCircle    ZoneShape = "circle"
	ZoneRectangle ZoneShape = "rectangle"
)

// Zone is a circular or rectangular region that assigns a color to every
// rectangle whose center falls inside it.
type Zone struct {
	ID    string    `json:"id"`
	Shape ZoneShape `json:"shape"`
	Color string    `json:"color"` // hex, e.g. "#ff8800"

	// Circle fields
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	// Rectangle fields
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`
}

// NewCircleZone creates a circular zone with a generated ID.
func NewCircleZone(cx, cy, radius float64, color string) Zone {
	return Zone{
		ID:     uuid.New().String()[:8],
		Shape:  ZoneCircle,
		Color:  color,
		CX:     cx,
		CY:     cy,
		Radius: radius,
	}
}

// NewRectZone creates a rectangular zone with a generated ID.
func NewRectZone(x, y, w, h float64, color string) Zone {
	return Zone{
		ID:    uuid.New().String()[:8],
		Shape: ZoneRectangle,
		Color: color,
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
	}
}

// Contains reports whether the point (px, py) lies inside the zone.
func (z Zone) Contains(px, py float64) bool {
	switch z.Shape {
	case ZoneCircle:
		dx := px - z.CX
		dy := py - z.CY
		return dx*dx+dy*dy <= z.Radius*z.Radius
	case ZoneRectangle:
		return px >= z.X && px <= z.X+z.W && py >= z.Y && py <= z.Y+z.H
	default:
		return false
	}
}

// Valid reports whether the zone has usable geometry.
func (z Zone) Valid() bool {
	switch z.Shape {
	case ZoneCircle:
		return z.Radius > 0
	case ZoneRectangle:
		return z.W > 0 && z.H > 0
	default:
		return false
	}
}

// ColorFor resolves the fill color for a rectangle: the color of the first
// zone containing the rectangle's center wins, fallback otherwise.
func ColorFor(r Rect, zones []Zone, fallback string) string {
	cx, cy := r.Center()
	for _, z := range zones {
		if z.Contains(cx, cy) {
			return z.Color
		}
	}
	return fallback
}
