package render

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artfoundry/canvaspack/internal/model"
)

func testArtwork() model.Artwork {
	cfg := model.GenerationConfig{
		Color:   "#4caf50",
		Count:   2,
		MinSize: 10,
		MaxSize: 30,
		Zones: []model.Zone{
			model.NewCircleZone(25, 25, 20, "#ff0000"),
		},
	}
	return model.NewArtwork("test", 100, 80, cfg, []model.Rect{
		{X: 15, Y: 15, W: 20, H: 20}, // center (25, 25) inside the zone
		{X: 60, Y: 40, W: 20, H: 20}, // outside the zone
	})
}

// ─── Hex Color Tests ───────────────────────────────────────

func TestParseHexColor_SixDigit(t *testing.T) {
	c, err := ParseHexColor("#ff8800")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := color.NRGBA{R: 255, G: 136, B: 0, A: 255}
	if c != want {
		t.Errorf("got %v, want %v", c, want)
	}
}

func TestParseHexColor_Shorthand(t *testing.T) {
	c, err := ParseHexColor("#fa0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := color.NRGBA{R: 255, G: 170, B: 0, A: 255}
	if c != want {
		t.Errorf("got %v, want %v", c, want)
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, s := range []string{"", "red", "#12345", "#zzzzzz"} {
		if _, err := ParseHexColor(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

// ─── PNG Tests ─────────────────────────────────────────────

func TestRenderPNG_Dimensions(t *testing.T) {
	img, err := RenderPNG(testArtwork())
	if err != nil {
		t.Fatalf("RenderPNG returned error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("got %dx%d, want 100x80", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNG_ZoneColoring(t *testing.T) {
	img, err := RenderPNG(testArtwork())
	if err != nil {
		t.Fatalf("RenderPNG returned error: %v", err)
	}

	// Inside the first rect (zone color red), away from the border.
	if got := img.NRGBAAt(25, 25); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("zone rect pixel = %v, want red", got)
	}

	// Inside the second rect (default green #4caf50).
	if got := img.NRGBAAt(70, 50); got.R != 0x4c || got.G != 0xaf || got.B != 0x50 {
		t.Errorf("plain rect pixel = %v, want #4caf50", got)
	}

	// Background pixel.
	bg, _ := ParseHexColor(model.DefaultBackground)
	if got := img.NRGBAAt(5, 70); got != bg {
		t.Errorf("background pixel = %v, want %v", got, bg)
	}
}

func TestRenderPNG_InvalidCanvas(t *testing.T) {
	art := model.NewArtwork("bad", 0, 100, model.DefaultConfig(), nil)
	if _, err := RenderPNG(art); err == nil {
		t.Error("expected error for zero-width canvas")
	}
}

func TestSavePNG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := SavePNG(path, testArtwork()); err != nil {
		t.Fatalf("SavePNG returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}

// ─── SVG Tests ─────────────────────────────────────────────

func TestRenderSVG_ContainsRects(t *testing.T) {
	svg := RenderSVG(testArtwork(), SVGOptions{})

	if !strings.HasPrefix(svg, "<svg") {
		t.Error("output should start with <svg")
	}
	if !strings.Contains(svg, `viewBox="0 0 100 80"`) {
		t.Error("missing viewBox")
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("zone-colored rect missing")
	}
	if !strings.Contains(svg, `fill="#4caf50"`) {
		t.Error("default-colored rect missing")
	}
	if strings.Contains(svg, "stroke-dasharray") {
		t.Error("zone outlines should be off by default")
	}
}

func TestRenderSVG_ZoneOutlines(t *testing.T) {
	svg := RenderSVG(testArtwork(), SVGOptions{ShowZones: true})
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("zone outlines missing with ShowZones")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("circle zone outline missing")
	}
}

func TestSaveSVG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.svg")
	if err := SaveSVG(path, testArtwork(), SVGOptions{}); err != nil {
		t.Fatalf("SaveSVG returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("SVG file looks truncated")
	}
}
