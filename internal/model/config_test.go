package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidHexColor(t *testing.T) {
	assert.True(t, ValidHexColor("#fff"))
	assert.True(t, ValidHexColor("#FF8800"))
	assert.True(t, ValidHexColor("#1a2b3c"))

	assert.False(t, ValidHexColor(""))
	assert.False(t, ValidHexColor("fff"))
	assert.False(t, ValidHexColor("#ff88"))
	assert.False(t, ValidHexColor("#gggggg"))
	assert.False(t, ValidHexColor("red"))
}

func TestSanitize_ValidConfigUnchanged(t *testing.T) {
	c := GenerationConfig{
		Color:   "#ff8800",
		Count:   30,
		MinSize: 10,
		MaxSize: 50,
	}
	got := c.Sanitize()
	assert.Equal(t, c.Color, got.Color)
	assert.Equal(t, 30, got.Count)
	assert.Equal(t, 10, got.MinSize)
	assert.Equal(t, 50, got.MaxSize)
}

func TestSanitize_InvalidColorFallsBack(t *testing.T) {
	c := GenerationConfig{Color: "chartreuse", Count: 10, MinSize: 5, MaxSize: 10}
	assert.Equal(t, DefaultColor, c.Sanitize().Color)
}

func TestSanitize_ClampsCount(t *testing.T) {
	c := GenerationConfig{Color: "#fff", Count: 10000, MinSize: 5, MaxSize: 10}
	assert.Equal(t, MaxRectCount, c.Sanitize().Count)

	c.Count = -5
	assert.Equal(t, 0, c.Sanitize().Count)
}

func TestSanitize_ClampsSizes(t *testing.T) {
	c := GenerationConfig{Color: "#fff", Count: 10, MinSize: 0, MaxSize: 9999}
	got := c.Sanitize()
	assert.Equal(t, MinRectSize, got.MinSize)
	assert.Equal(t, MaxRectSize, got.MaxSize)
}

func TestSanitize_SwapsInvertedSizes(t *testing.T) {
	c := GenerationConfig{Color: "#fff", Count: 10, MinSize: 60, MaxSize: 20}
	got := c.Sanitize()
	assert.Equal(t, 20, got.MinSize)
	assert.Equal(t, 60, got.MaxSize)
	assert.LessOrEqual(t, got.MinSize, got.MaxSize)
}

func TestSanitize_DropsInvalidZones(t *testing.T) {
	c := GenerationConfig{
		Color:   "#fff",
		Count:   10,
		MinSize: 5,
		MaxSize: 10,
		Zones: []Zone{
			NewCircleZone(50, 50, 20, "#ff0000"),
			{Shape: ZoneCircle, Radius: 0, Color: "#00ff00"},   // no radius
			{Shape: ZoneRectangle, W: 10, H: 10, Color: "red"}, // bad color
			NewRectZone(0, 0, 30, 30, "#0000ff"),
		},
	}
	got := c.Sanitize()
	require.Len(t, got.Zones, 2)
	assert.Equal(t, "#ff0000", got.Zones[0].Color)
	assert.Equal(t, "#0000ff", got.Zones[1].Color)
}

func TestSanitize_AssignsZoneIDs(t *testing.T) {
	c := GenerationConfig{
		Color:   "#fff",
		Count:   1,
		MinSize: 1,
		MaxSize: 1,
		Zones: []Zone{
			{Shape: ZoneCircle, CX: 10, CY: 10, Radius: 5, Color: "#ff0000"},
		},
	}
	got := c.Sanitize()
	require.Len(t, got.Zones, 1)
	assert.NotEmpty(t, got.Zones[0].ID)
}

func TestDefaultConfig_IsSane(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, c, c.Sanitize(), "defaults must survive sanitization unchanged")
}
