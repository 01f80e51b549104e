package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/artfoundry/canvaspack/internal/model"
)

// buildTestArtwork creates a realistic generated artwork for testing.
func buildTestArtwork() model.Artwork {
	cfg := model.GenerationConfig{
		Color:   "#4caf50",
		Count:   4,
		MinSize: 20,
		MaxSize: 60,
		Zones: []model.Zone{
			model.NewCircleZone(200, 150, 100, "#ff5722"),
			model.NewRectZone(400, 300, 200, 150, "#2196f3"),
		},
	}
	rects := []model.Rect{
		{X: 180, Y: 130, W: 40, H: 40}, // inside the circle zone
		{X: 450, Y: 340, W: 50, H: 30}, // inside the rect zone
		{X: 50, Y: 400, W: 60, H: 40},
		{X: 600, Y: 80, W: 30, H: 55},
	}
	art := model.NewArtwork("warm sunset over a calm lake", 800, 600, cfg, rects)
	return art
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artwork.pdf")

	err := ExportPDF(path, buildTestArtwork())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// Two pages plus an embedded QR image should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_InvalidCanvas(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pdf")

	art := buildTestArtwork()
	art.Width = 0

	if err := ExportPDF(path, art); err == nil {
		t.Fatal("expected error for zero-width canvas, got nil")
	}
}

func TestExportPDF_NoRects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	art := buildTestArtwork()
	art.Rects = nil

	// An empty composition is a valid degraded result and still prints.
	if err := ExportPDF(path, art); err != nil {
		t.Fatalf("ExportPDF returned error for empty composition: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestPaletteFor(t *testing.T) {
	art := buildTestArtwork()
	palette := PaletteFor(art)

	if len(palette) != 3 {
		t.Fatalf("expected 3 palette entries, got %d", len(palette))
	}
	// First appearance order: circle zone, rect zone, then default color.
	if palette[0].Color != "#ff5722" {
		t.Errorf("first palette color = %s, want #ff5722", palette[0].Color)
	}
	if palette[2].Color != "#4caf50" || palette[2].Count != 2 {
		t.Errorf("default color entry = %+v, want #4caf50 with count 2", palette[2])
	}
}

func TestTagFor(t *testing.T) {
	art := buildTestArtwork()
	tag := TagFor(art)

	if tag.ID != art.ID {
		t.Errorf("tag ID = %s, want %s", tag.ID, art.ID)
	}
	if tag.Placed != 4 {
		t.Errorf("tag Placed = %d, want 4", tag.Placed)
	}
	if tag.ZoneCount != 2 {
		t.Errorf("tag ZoneCount = %d, want 2", tag.ZoneCount)
	}
	if tag.Count != 4 || tag.MinSize != 20 || tag.MaxSize != 60 {
		t.Errorf("tag settings = %+v, want count 4 sizes 20-60", tag)
	}
}
