package ui

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/artfoundry/canvaspack/internal/importer"
	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/artfoundry/canvaspack/internal/render"
)

// ─── Zones Panel ───────────────────────────────────────────

func (a *App) buildZonesPanel() fyne.CanvasObject {
	a.zonesContainer = container.NewVBox()
	a.refreshZonesList()

	addBtn := widget.NewButtonWithIcon("Add Zone", theme.ContentAddIcon(), func() {
		a.showAddZoneDialog()
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.showImportZonesDialog()
	})

	exportBtn := widget.NewButtonWithIcon("Export CSV...", theme.DocumentSaveIcon(), func() {
		a.exportZonesCSV()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	return container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(a.zonesContainer),
	)
}

func (a *App) refreshZonesList() {
	if a.zonesContainer == nil {
		return
	}
	a.zonesContainer.RemoveAll()

	if len(a.config.Zones) == 0 {
		a.zonesContainer.Add(widget.NewLabel("No zones defined. Rectangles inside a zone take its color."))
		a.zonesContainer.Refresh()
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Shape", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Position", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.zonesContainer.Add(header)
	a.zonesContainer.Add(widget.NewSeparator())

	for i := range a.config.Zones {
		idx := i
		z := a.config.Zones[i]

		var position, size string
		switch z.Shape {
		case model.ZoneCircle:
			position = fmt.Sprintf("(%.0f, %.0f)", z.CX, z.CY)
			size = fmt.Sprintf("r = %.0f", z.Radius)
		default:
			position = fmt.Sprintf("(%.0f, %.0f)", z.X, z.Y)
			size = fmt.Sprintf("%.0f x %.0f", z.W, z.H)
		}

		swatch := canvas.NewRectangle(zoneSwatchColor(z.Color))
		swatch.SetMinSize(fyne.NewSize(24, 16))

		row := container.NewGridWithColumns(6,
			widget.NewLabel(string(z.Shape)),
			widget.NewLabel(position),
			widget.NewLabel(size),
			container.NewHBox(swatch, widget.NewLabel(z.Color)),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit zone", func() {
				a.showEditZoneDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete zone", func() {
				a.pushHistory("Delete Zone")
				a.config.Zones = append(a.config.Zones[:idx], a.config.Zones[idx+1:]...)
				a.refreshZonesList()
			}),
		)
		a.zonesContainer.Add(row)
	}
	a.zonesContainer.Refresh()
}

func zoneSwatchColor(hex string) color.Color {
	c, err := render.ParseHexColor(hex)
	if err != nil {
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return c
}

// ─── Add / Edit Zone Dialogs ───────────────────────────────

func (a *App) showAddZoneDialog() {
	a.showZoneDialog("Add Zone", model.Zone{}, func(z model.Zone) {
		a.pushHistory("Add Zone")
		a.config.Zones = append(a.config.Zones, z)
		a.refreshZonesList()
	})
}

func (a *App) showEditZoneDialog(idx int) {
	if idx < 0 || idx >= len(a.config.Zones) {
		return
	}
	a.showZoneDialog("Edit Zone", a.config.Zones[idx], func(z model.Zone) {
		a.pushHistory("Edit Zone")
		z.ID = a.config.Zones[idx].ID
		a.config.Zones[idx] = z
		a.refreshZonesList()
	})
}

// showZoneDialog displays the shared zone form. The shape selector switches
// between radius and width/height inputs.
func (a *App) showZoneDialog(title string, initial model.Zone, onSave func(model.Zone)) {
	isCircle := initial.Shape == model.ZoneCircle || initial.Shape == ""

	xEntry := widget.NewEntry()
	yEntry := widget.NewEntry()
	radiusEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#rrggbb")

	if initial.Shape == model.ZoneCircle {
		xEntry.SetText(fmt.Sprintf("%.0f", initial.CX))
		yEntry.SetText(fmt.Sprintf("%.0f", initial.CY))
		radiusEntry.SetText(fmt.Sprintf("%.0f", initial.Radius))
	} else if initial.Shape == model.ZoneRectangle {
		xEntry.SetText(fmt.Sprintf("%.0f", initial.X))
		yEntry.SetText(fmt.Sprintf("%.0f", initial.Y))
		widthEntry.SetText(fmt.Sprintf("%.0f", initial.W))
		heightEntry.SetText(fmt.Sprintf("%.0f", initial.H))
	}
	if initial.Color != "" {
		colorEntry.SetText(initial.Color)
	}

	radiusItem := widget.NewFormItem("Radius", radiusEntry)
	widthItem := widget.NewFormItem("Width", widthEntry)
	heightItem := widget.NewFormItem("Height", heightEntry)

	shapeSelect := widget.NewSelect([]string{"circle", "rectangle"}, nil)
	if isCircle {
		shapeSelect.SetSelected("circle")
	} else {
		shapeSelect.SetSelected("rectangle")
	}

	buildItems := func(circle bool) []*widget.FormItem {
		items := []*widget.FormItem{
			widget.NewFormItem("Shape", shapeSelect),
			widget.NewFormItem("X", xEntry),
			widget.NewFormItem("Y", yEntry),
		}
		if circle {
			items = append(items, radiusItem)
		} else {
			items = append(items, widthItem, heightItem)
		}
		items = append(items, widget.NewFormItem("Color", colorEntry))
		return items
	}

	// Switching the shape rebuilds the form with the matching size fields.
	var show func(circle bool)
	show = func(circle bool) {
		d := dialog.NewForm(title, "Save", "Cancel", buildItems(circle),
			func(confirmed bool) {
				if !confirmed {
					return
				}
				z, err := zoneFromForm(circle, xEntry.Text, yEntry.Text,
					radiusEntry.Text, widthEntry.Text, heightEntry.Text, colorEntry.Text)
				if err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				onSave(z)
			}, a.window)
		d.Resize(fyne.NewSize(400, 350))

		shapeSelect.OnChanged = func(s string) {
			d.Hide()
			show(s == "circle")
		}
		d.Show()
	}
	show(isCircle)
}

func zoneFromForm(circle bool, xs, ys, rs, ws, hs, colorText string) (model.Zone, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return model.Zone{}, fmt.Errorf("invalid X value %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return model.Zone{}, fmt.Errorf("invalid Y value %q", ys)
	}
	if !model.ValidHexColor(colorText) {
		return model.Zone{}, fmt.Errorf("invalid hex color %q", colorText)
	}

	if circle {
		r, err := strconv.ParseFloat(rs, 64)
		if err != nil || r <= 0 {
			return model.Zone{}, fmt.Errorf("radius must be a positive number")
		}
		return model.NewCircleZone(x, y, r, colorText), nil
	}

	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || w <= 0 {
		return model.Zone{}, fmt.Errorf("width must be a positive number")
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil || h <= 0 {
		return model.Zone{}, fmt.Errorf("height must be a positive number")
	}
	return model.NewRectZone(x, y, w, h, colorText), nil
}

// ─── Zone Import / Export ──────────────────────────────────

func (a *App) showImportZonesDialog() {
	csvBtn := widget.NewButton("CSV File", func() {
		a.importZonesCSV()
	})
	excelBtn := widget.NewButton("Excel Workbook", func() {
		a.importZonesExcel()
	})
	dxfBtn := widget.NewButton("DXF Drawing", func() {
		a.importZonesDXF()
	})

	content := container.NewVBox(
		widget.NewLabel("Choose the file format to import zones from:"),
		csvBtn, excelBtn, dxfBtn,
	)
	d := dialog.NewCustom("Import Zones", "Cancel", content, a.window)

	wrap := func(btn *widget.Button) {
		action := btn.OnTapped
		btn.OnTapped = func() {
			d.Hide()
			action()
		}
	}
	wrap(csvBtn)
	wrap(excelBtn)
	wrap(dxfBtn)
	d.Show()
}

func (a *App) importZonesCSV() {
	a.importZonesFromFile([]string{".csv", ".txt"}, importer.ImportCSV)
}

func (a *App) importZonesExcel() {
	a.importZonesFromFile([]string{".xlsx", ".xlsm"}, importer.ImportExcel)
}

func (a *App) importZonesDXF() {
	a.importZonesFromFile([]string{".dxf"}, importer.ImportDXF)
}

func (a *App) importZonesFromFile(extensions []string, importFn func(string) importer.ImportResult) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		a.handleImportResult(importFn(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(extensions))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Zones) > 0 {
		a.pushHistory("Import Zones")
		a.config.Zones = append(a.config.Zones, result.Zones...)
		a.refreshZonesList()
	}

	var summary string
	summary = fmt.Sprintf("Imported %d zone(s).", len(result.Zones))
	if len(result.Warnings) > 0 {
		summary += fmt.Sprintf("\n\nWarnings (%d):", len(result.Warnings))
		max := len(result.Warnings)
		if max > 10 {
			max = 10
		}
		for _, w := range result.Warnings[:max] {
			summary += "\n  " + w
		}
		if len(result.Warnings) > 10 {
			summary += fmt.Sprintf("\n  ... and %d more", len(result.Warnings)-10)
		}
	}
	if len(result.Errors) > 0 {
		summary += fmt.Sprintf("\n\nSkipped rows (%d):", len(result.Errors))
		max := len(result.Errors)
		if max > 10 {
			max = 10
		}
		for _, e := range result.Errors[:max] {
			summary += "\n  " + e
		}
		if len(result.Errors) > 10 {
			summary += fmt.Sprintf("\n  ... and %d more", len(result.Errors)-10)
		}
	}
	dialog.ShowInformation("Import Result", summary, a.window)
}

func (a *App) exportZonesCSV() {
	if len(a.config.Zones) == 0 {
		dialog.ShowInformation("No zones", "There are no zones to export.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := writeZonesCSV(path, a.config.Zones); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%d zone(s) exported to %s", len(a.config.Zones), path), a.window)
	}, a.window)
	d.SetFileName("zones.csv")
	d.Show()
}

func writeZonesCSV(path string, zones []model.Zone) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Shape", "X", "Y", "Radius", "Width", "Height", "Color"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, z := range zones {
		var row []string
		switch z.Shape {
		case model.ZoneCircle:
			row = []string{"circle",
				strconv.FormatFloat(z.CX, 'f', -1, 64),
				strconv.FormatFloat(z.CY, 'f', -1, 64),
				strconv.FormatFloat(z.Radius, 'f', -1, 64),
				"", "", z.Color}
		default:
			row = []string{"rectangle",
				strconv.FormatFloat(z.X, 'f', -1, 64),
				strconv.FormatFloat(z.Y, 'f', -1, 64),
				"",
				strconv.FormatFloat(z.W, 'f', -1, 64),
				strconv.FormatFloat(z.H, 'f', -1, 64),
				z.Color}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
