// Package export produces print-ready PDF sheets for generated artworks.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/artfoundry/canvaspack/internal/render"
	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrPrintSize  = 24.0
)

// ArtworkTag holds the data encoded into the print sheet's QR code so a
// composition can be traced back to the settings that produced it.
type ArtworkTag struct {
	ID        string  `json:"id"`
	Prompt    string  `json:"prompt,omitempty"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	Count     int     `json:"count"`
	MinSize   int     `json:"min_size"`
	MaxSize   int     `json:"max_size"`
	ZoneCount int     `json:"zones"`
	Placed    int     `json:"placed"`
}

// TagFor builds the QR payload for an artwork.
func TagFor(art model.Artwork) ArtworkTag {
	return ArtworkTag{
		ID:        art.ID,
		Prompt:    art.Prompt,
		Width:     art.Width,
		Height:    art.Height,
		Color:     art.Config.Color,
		Count:     art.Config.Count,
		MinSize:   art.Config.MinSize,
		MaxSize:   art.Config.MaxSize,
		ZoneCount: len(art.Config.Zones),
		Placed:    len(art.Rects),
	}
}

// ExportPDF generates a print sheet for the artwork: the composition drawn
// to scale, a palette legend, generation statistics, and a QR code encoding
// the settings that produced it.
func ExportPDF(path string, art model.Artwork) error {
	if art.Width <= 0 || art.Height <= 0 {
		return fmt.Errorf("invalid canvas size %.0fx%.0f", art.Width, art.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderArtPage(pdf, art); err != nil {
		return err
	}

	pdf.AddPage()
	renderDetailsPage(pdf, art)

	return pdf.OutputFileAndClose(path)
}

// renderArtPage draws the composition on the current PDF page.
func renderArtPage(pdf *fpdf.Fpdf, art model.Artwork) error {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f px)", art.Title(), art.Width, art.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rectangles: %d of %d | Coverage: %.1f%% | Zones: %d | Created: %s",
		len(art.Rects), art.Config.Count, art.Coverage(), len(art.Config.Zones),
		art.CreatedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area, reserving room for the legend strip
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/art.Width, drawHeight/art.Height)
	canvasW := art.Width * scale
	canvasH := art.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Canvas background
	br, bg, bb := pdfColor(model.DefaultBackground)
	pdf.SetFillColor(br, bg, bb)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawZoneOutlines(pdf, art.Config.Zones, scale, offsetX, offsetY)

	// Placed rectangles
	for _, r := range art.Rects {
		cr, cg, cb := pdfColor(model.ColorFor(r, art.Config.Zones, art.Config.Color))
		pdf.SetFillColor(cr, cg, cb)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(offsetX+r.X*scale, offsetY+r.Y*scale, r.W*scale, r.H*scale, "FD")
	}

	drawPaletteLegend(pdf, art, offsetY+canvasH+4)

	return drawQRTag(pdf, art, pageWidth-marginRight-qrPrintSize, marginTop)
}

// drawZoneOutlines renders each color zone as a dashed outline on the canvas.
func drawZoneOutlines(pdf *fpdf.Fpdf, zones []model.Zone, scale, offsetX, offsetY float64) {
	if len(zones) == 0 {
		return
	}

	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)

	for _, z := range zones {
		zr, zg, zb := pdfColor(z.Color)
		pdf.SetDrawColor(zr, zg, zb)
		switch z.Shape {
		case model.ZoneCircle:
			pdf.Circle(offsetX+z.CX*scale, offsetY+z.CY*scale, z.Radius*scale, "D")
		case model.ZoneRectangle:
			pdf.Rect(offsetX+z.X*scale, offsetY+z.Y*scale, z.W*scale, z.H*scale, "D")
		}
	}

	pdf.SetDashPattern([]float64{}, 0)
}

// drawPaletteLegend renders color swatches for each color used in the artwork.
func drawPaletteLegend(pdf *fpdf.Fpdf, art model.Artwork, startY float64) {
	palette := PaletteFor(art)
	if len(palette) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Palette:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	maxX := pageWidth - marginRight

	for _, entry := range palette {
		label := fmt.Sprintf("%s (%d)", entry.Color, entry.Count)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		cr, cg, cb := pdfColor(entry.Color)
		pdf.SetFillColor(cr, cg, cb)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// drawQRTag embeds a QR code encoding the artwork's generation settings.
func drawQRTag(pdf *fpdf.Fpdf, art model.Artwork, x, y float64) error {
	data, err := json.Marshal(TagFor(art))
	if err != nil {
		return fmt.Errorf("failed to marshal artwork tag: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", art.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrPrintSize, qrPrintSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderDetailsPage draws the settings and zone breakdown page.
func renderDetailsPage(pdf *fpdf.Fpdf, art model.Artwork) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Generation Details", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	items := []struct {
		label string
		value string
	}{
		{"Artwork ID", art.ID},
		{"Canvas", fmt.Sprintf("%.0f x %.0f px", art.Width, art.Height)},
		{"Requested Count", fmt.Sprintf("%d", art.Config.Count)},
		{"Placed", fmt.Sprintf("%d", len(art.Rects))},
		{"Shortfall", fmt.Sprintf("%d", art.Shortfall())},
		{"Size Range", fmt.Sprintf("%d - %d px", art.Config.MinSize, art.Config.MaxSize)},
		{"Default Color", art.Config.Color},
		{"Covered Area", fmt.Sprintf("%.0f px²", art.CoveredArea())},
		{"Coverage", fmt.Sprintf("%.1f%%", art.Coverage())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if art.Prompt != "" {
		y += 3
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Prompt", "", 0, "L", false, 0, "")
		y += 9
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-10, 5, art.Prompt, "", "L", false)
		y = pdf.GetY() + 5
	}

	if len(art.Config.Zones) > 0 {
		y += 3
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Color Zones", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{15, 30, 70, 45, 30}
		headers := []string{"#", "Shape", "Position", "Size", "Color"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, z := range art.Config.Zones {
			var pos, size string
			switch z.Shape {
			case model.ZoneCircle:
				pos = fmt.Sprintf("center (%.0f, %.0f)", z.CX, z.CY)
				size = fmt.Sprintf("r = %.0f", z.Radius)
			case model.ZoneRectangle:
				pos = fmt.Sprintf("(%.0f, %.0f)", z.X, z.Y)
				size = fmt.Sprintf("%.0f x %.0f", z.W, z.H)
			}

			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			rowData := []string{
				fmt.Sprintf("%d", i+1),
				string(z.Shape),
				pos,
				size,
				z.Color,
			}
			xPos = marginLeft
			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CanvasPack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// PaletteEntry is one color used in an artwork plus its usage count.
type PaletteEntry struct {
	Color string
	Count int
}

// PaletteFor returns the distinct colors used by the artwork's rectangles,
// ordered by first appearance.
func PaletteFor(art model.Artwork) []PaletteEntry {
	counts := make(map[string]int)
	var order []string
	for _, r := range art.Rects {
		c := model.ColorFor(r, art.Config.Zones, art.Config.Color)
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	entries := make([]PaletteEntry, 0, len(order))
	for _, c := range order {
		entries = append(entries, PaletteEntry{Color: c, Count: counts[c]})
	}
	return entries
}

// pdfColor converts a hex color string to RGB ints for fpdf, falling back
// to the default rectangle color on parse failure.
func pdfColor(hex string) (int, int, int) {
	c, err := render.ParseHexColor(hex)
	if err != nil {
		c, _ = render.ParseHexColor(model.DefaultColor)
	}
	return int(c.R), int(c.G), int(c.B)
}
