package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Accessors(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 1200.0, r.Area())

	cx, cy := r.Center()
	assert.Equal(t, 25.0, cx)
	assert.Equal(t, 40.0, cy)
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.True(t, a.Overlaps(Rect{X: 2, Y: 2, W: 4, H: 4}), "containment overlaps")
	assert.False(t, a.Overlaps(Rect{X: 20, Y: 0, W: 10, H: 10}))
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, W: 10, H: 10}), "shared edge is not overlap")
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 10, W: 10, H: 10}), "shared corner is not overlap")
}

func TestRect_Contains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 50, H: 50}

	assert.True(t, outer.Contains(Rect{X: 10, Y: 10, W: 20, H: 20}))
	assert.True(t, outer.Contains(Rect{X: 0, Y: 0, W: 50, H: 50}), "bounds are inclusive")
	assert.False(t, outer.Contains(Rect{X: 40, Y: 40, W: 20, H: 20}))
	assert.False(t, outer.Contains(Rect{X: -1, Y: 10, W: 20, H: 20}))
}

func TestArtwork_Stats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 3
	a := NewArtwork("two squares", 100, 100, cfg, []Rect{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 50, Y: 50, W: 20, H: 20},
	})

	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 500.0, a.CoveredArea())
	assert.InDelta(t, 5.0, a.Coverage(), 1e-9)
	assert.Equal(t, 1, a.Shortfall())
	assert.Equal(t, "two squares", a.Title())
}

func TestArtwork_TitleTruncation(t *testing.T) {
	long := "a very long prompt describing an intricate composition of nested rectangles"
	a := NewArtwork(long, 10, 10, DefaultConfig(), nil)
	assert.Len(t, a.Title(), 51)
	assert.Contains(t, a.Title(), "...")
}

func TestArtwork_EmptyPromptTitle(t *testing.T) {
	a := NewArtwork("", 10, 10, DefaultConfig(), nil)
	assert.Contains(t, a.Title(), "Untitled")
}
