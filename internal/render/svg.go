package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/artfoundry/canvaspack/internal/model"
)

// SVGOptions controls optional vector output features.
type SVGOptions struct {
	// ShowZones draws the zone outlines as dashed strokes, useful when
	// inspecting a composition.
	ShowZones bool
}

// RenderSVG produces standalone SVG markup for an artwork.
func RenderSVG(art model.Artwork, opts SVGOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		art.Width, art.Height, art.Width, art.Height)
	fmt.Fprintf(&b, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		art.Width, art.Height, model.DefaultBackground)

	if opts.ShowZones {
		for _, z := range art.Config.Zones {
			switch z.Shape {
			case model.ZoneCircle:
				fmt.Fprintf(&b, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-dasharray="4 3" opacity="0.5"/>`+"\n",
					z.CX, z.CY, z.Radius, z.Color)
			case model.ZoneRectangle:
				fmt.Fprintf(&b, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 3" opacity="0.5"/>`+"\n",
					z.X, z.Y, z.W, z.H, z.Color)
			}
		}
	}

	for _, r := range art.Rects {
		fill := model.ColorFor(r, art.Config.Zones, art.Config.Color)
		fmt.Fprintf(&b, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#000000" stroke-opacity="0.35"/>`+"\n",
			r.X, r.Y, r.W, r.H, fill)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// SaveSVG writes the artwork as an SVG file.
func SaveSVG(path string, art model.Artwork, opts SVGOptions) error {
	if err := os.WriteFile(path, []byte(RenderSVG(art, opts)), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	return nil
}
