// Package widgets contains custom Fyne widgets for CanvasPack.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/artfoundry/canvaspack/internal/render"
)

// ArtCanvas is a custom Fyne widget that renders a generated artwork:
// the canvas background, optional zone outlines, and the packed rectangles.
type ArtCanvas struct {
	widget.BaseWidget
	art       model.Artwork
	showZones bool
	maxWidth  float32
	maxHeight float32
}

func NewArtCanvas(art model.Artwork, showZones bool, maxW, maxH float32) *ArtCanvas {
	ac := &ArtCanvas{
		art:       art,
		showZones: showZones,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	ac.ExtendBaseWidget(ac)
	return ac
}

// SetArtwork replaces the displayed artwork and redraws.
func (ac *ArtCanvas) SetArtwork(art model.Artwork) {
	ac.art = art
	ac.Refresh()
}

// SetShowZones toggles the zone outline overlay.
func (ac *ArtCanvas) SetShowZones(show bool) {
	ac.showZones = show
	ac.Refresh()
}

func (ac *ArtCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newArtCanvasRenderer(ac)
}

type artCanvasRenderer struct {
	ac      *ArtCanvas
	objects []fyne.CanvasObject
}

func newArtCanvasRenderer(ac *ArtCanvas) *artCanvasRenderer {
	r := &artCanvasRenderer{ac: ac}
	r.rebuild()
	return r
}

// fillColor parses a hex color into an NRGBA, falling back to the default
// rectangle color.
func fillColor(hex string) color.NRGBA {
	c, err := render.ParseHexColor(hex)
	if err != nil {
		c, _ = render.ParseHexColor(model.DefaultColor)
	}
	return c
}

func (r *artCanvasRenderer) scale() float32 {
	art := r.ac.art
	if art.Width <= 0 || art.Height <= 0 {
		return 1
	}
	scaleX := r.ac.maxWidth / float32(art.Width)
	scaleY := r.ac.maxHeight / float32(art.Height)
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

func (r *artCanvasRenderer) rebuild() {
	r.objects = nil

	art := r.ac.art
	scale := r.scale()
	canvasW := float32(art.Width) * scale
	canvasH := float32(art.Height) * scale

	// Canvas background
	bg := canvas.NewRectangle(fillColor(model.DefaultBackground))
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Canvas border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	if r.ac.showZones {
		r.drawZones(scale)
	}

	// Packed rectangles
	for _, rect := range art.Rects {
		col := fillColor(model.ColorFor(rect, art.Config.Zones, art.Config.Color))
		rw := float32(rect.W) * scale
		rh := float32(rect.H) * scale
		rx := float32(rect.X) * scale
		ry := float32(rect.Y) * scale

		fill := canvas.NewRectangle(col)
		fill.Resize(fyne.NewSize(rw, rh))
		fill.Move(fyne.NewPos(rx, ry))
		r.objects = append(r.objects, fill)

		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		outline.StrokeWidth = 1
		outline.Resize(fyne.NewSize(rw, rh))
		outline.Move(fyne.NewPos(rx, ry))
		r.objects = append(r.objects, outline)
	}
}

// drawZones overlays each color zone as a stroked outline.
func (r *artCanvasRenderer) drawZones(scale float32) {
	for _, z := range r.ac.art.Config.Zones {
		stroke := fillColor(z.Color)
		stroke.A = 180

		switch z.Shape {
		case model.ZoneCircle:
			circle := canvas.NewCircle(color.Transparent)
			circle.StrokeColor = stroke
			circle.StrokeWidth = 2
			d := float32(z.Radius*2) * scale
			circle.Resize(fyne.NewSize(d, d))
			circle.Move(fyne.NewPos(
				float32(z.CX-z.Radius)*scale,
				float32(z.CY-z.Radius)*scale,
			))
			r.objects = append(r.objects, circle)

		case model.ZoneRectangle:
			rect := canvas.NewRectangle(color.Transparent)
			rect.StrokeColor = stroke
			rect.StrokeWidth = 2
			rect.Resize(fyne.NewSize(float32(z.W)*scale, float32(z.H)*scale))
			rect.Move(fyne.NewPos(float32(z.X)*scale, float32(z.Y)*scale))
			r.objects = append(r.objects, rect)
		}
	}
}

func (r *artCanvasRenderer) Layout(size fyne.Size)        {}
func (r *artCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *artCanvasRenderer) Destroy()                     {}
func (r *artCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *artCanvasRenderer) MinSize() fyne.Size {
	art := r.ac.art
	scale := r.scale()
	return fyne.NewSize(float32(art.Width)*scale, float32(art.Height)*scale)
}

// RenderArtwork creates a scrollable view of a generated artwork with its
// header line and placement statistics.
func RenderArtwork(art *model.Artwork, showZones bool) fyne.CanvasObject {
	if art == nil {
		return widget.NewLabel("No artwork yet. Describe a composition and click Generate.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%s (%.0f x %.0f) with %d of %d rectangles, %.1f%% coverage",
		art.Title(), art.Width, art.Height,
		len(art.Rects), art.Config.Count, art.Coverage(),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{
		header,
		NewArtCanvas(*art, showZones, 760, 540),
	}

	if shortfall := art.Shortfall(); shortfall > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"Placed %d fewer rectangle(s) than requested. The canvas is too crowded for the chosen sizes.",
			shortfall,
		))
		warning.Importance = widget.WarningImportance
		items = append(items, warning)
	}

	if len(art.Config.Zones) > 0 {
		items = append(items, widget.NewSeparator())
		zoneHeader := widget.NewLabel("Color Zones:")
		zoneHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, zoneHeader)
		for _, line := range buildZoneBreakdown(*art) {
			items = append(items, widget.NewLabel(line))
		}
	}

	return container.NewVScroll(container.NewVBox(items...))
}

// buildZoneBreakdown generates per-zone statistics lines: how many of the
// placed rectangles picked up each zone's color.
func buildZoneBreakdown(art model.Artwork) []string {
	counts := make(map[string]int, len(art.Config.Zones))
	for _, r := range art.Rects {
		cx, cy := r.Center()
		for _, z := range art.Config.Zones {
			if z.Contains(cx, cy) {
				counts[z.ID]++
				break
			}
		}
	}

	var lines []string
	for i, z := range art.Config.Zones {
		var desc string
		switch z.Shape {
		case model.ZoneCircle:
			desc = fmt.Sprintf("circle at (%.0f, %.0f) r=%.0f", z.CX, z.CY, z.Radius)
		case model.ZoneRectangle:
			desc = fmt.Sprintf("rect at (%.0f, %.0f) %.0fx%.0f", z.X, z.Y, z.W, z.H)
		}
		lines = append(lines, fmt.Sprintf(
			"  %d. %s %s: %d rectangle(s)", i+1, z.Color, desc, counts[z.ID],
		))
	}
	return lines
}
