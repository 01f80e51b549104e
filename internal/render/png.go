package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/artfoundry/canvaspack/internal/model"
)

const borderDarkening = 0.55

// RenderPNG rasterizes an artwork: background fill, then each rectangle
// painted with its zone-resolved color and a darker 1px border.
func RenderPNG(art model.Artwork) (*image.NRGBA, error) {
	w := int(math.Ceil(art.Width))
	h := int(math.Ceil(art.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %.0fx%.0f", art.Width, art.Height)
	}

	bg, err := ParseHexColor(model.DefaultBackground)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, r := range art.Rects {
		name := model.ColorFor(r, art.Config.Zones, art.Config.Color)
		fill, err := ParseHexColor(name)
		if err != nil {
			// Zone colors are sanitized upstream; fall back rather than fail.
			fill, _ = ParseHexColor(model.DefaultColor)
		}
		paintRect(img, r, fill)
	}

	return img, nil
}

// paintRect fills the rectangle and outlines it with a darkened border.
func paintRect(img *image.NRGBA, r model.Rect, fill color.NRGBA) {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.Right()))
	y1 := int(math.Round(r.Bottom()))

	rect := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}

	draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

	border := darken(fill, borderDarkening)
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetNRGBA(x, rect.Min.Y, border)
		img.SetNRGBA(x, rect.Max.Y-1, border)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetNRGBA(rect.Min.X, y, border)
		img.SetNRGBA(rect.Max.X-1, y, border)
	}
}

// WritePNG renders the artwork and encodes it to w.
func WritePNG(w io.Writer, art model.Artwork) error {
	img, err := RenderPNG(art)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders the artwork to a PNG file.
func SavePNG(path string, art model.Artwork) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	defer f.Close()

	if err := WritePNG(f, art); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
