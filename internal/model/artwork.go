package model

import (
	"time"

	"github.com/google/uuid"
)

// Artwork is one completed generation: the prompt it came from, the sanitized
// configuration, and the packed rectangles. It is built once and never
// mutated; consumers receive it read-only.
type Artwork struct {
	ID        string           `json:"id"`
	Prompt    string           `json:"prompt"`
	CreatedAt time.Time        `json:"created_at"`
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	Config    GenerationConfig `json:"config"`
	Rects     []Rect           `json:"rects"`
}

// NewArtwork assembles an Artwork with a generated ID and timestamp.
func NewArtwork(prompt string, width, height float64, config GenerationConfig, rects []Rect) Artwork {
	return Artwork{
		ID:        uuid.New().String()[:8],
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
		Width:     width,
		Height:    height,
		Config:    config,
		Rects:     rects,
	}
}

// CoveredArea returns the total area occupied by placed rectangles.
func (a Artwork) CoveredArea() float64 {
	var total float64
	for _, r := range a.Rects {
		total += r.Area()
	}
	return total
}

// Coverage returns the canvas coverage percentage.
func (a Artwork) Coverage() float64 {
	canvas := a.Width * a.Height
	if canvas == 0 {
		return 0
	}
	return (a.CoveredArea() / canvas) * 100.0
}

// Shortfall returns how many rectangles fewer than requested were placed.
// A non-zero shortfall is a normal outcome on dense canvases, not an error.
func (a Artwork) Shortfall() int {
	return a.Config.Count - len(a.Rects)
}

// Title derives a display title from the prompt.
func (a Artwork) Title() string {
	const maxLen = 48
	if a.Prompt == "" {
		return "Untitled " + a.ID
	}
	if len(a.Prompt) <= maxLen {
		return a.Prompt
	}
	return a.Prompt[:maxLen] + "..."
}
