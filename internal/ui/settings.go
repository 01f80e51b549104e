package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/artfoundry/canvaspack/internal/gallery"
	"github.com/artfoundry/canvaspack/internal/model"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.appCfg

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	backgroundEntry := widget.NewEntry()
	backgroundEntry.SetText(cfg.DefaultBackground)
	backgroundEntry.OnChanged = func(text string) {
		if model.ValidHexColor(text) {
			cfg.DefaultBackground = text
		}
	}

	providerSelect := widget.NewSelect([]string{"anthropic", "local"}, func(selected string) {
		cfg.LLMProvider = selected
	})
	providerSelect.SetSelected(cfg.LLMProvider)

	modelEntry := widget.NewEntry()
	modelEntry.SetText(cfg.LLMModel)
	modelEntry.OnChanged = func(text string) {
		cfg.LLMModel = text
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Gallery Limit (0=unlimited)", intEntry(&cfg.GalleryLimit)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Canvas Width (px)", floatEntry(&cfg.DefaultCanvasWidth)),
		widget.NewFormItem("Default Canvas Height (px)", floatEntry(&cfg.DefaultCanvasHeight)),
		widget.NewFormItem("Default Background", backgroundEntry),
		widget.NewFormItem("Minimum Spacing (px)", floatEntry(&cfg.DefaultGap)),
		widget.NewFormItem("Max Attempts per Rectangle", intEntry(&cfg.DefaultMaxAttempts)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Prompt Provider", providerSelect),
		widget.NewFormItem("Model", modelEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.appCfg = cfg
			a.applyTheme()
			a.saveAppConfig()
			dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// applyTheme sets the fyne theme matching the configured variant.
func (a *App) applyTheme() {
	switch a.appCfg.Theme {
	case "light":
		fyne.CurrentApp().Settings().SetTheme(NewCanvasPackThemeWithVariant(theme.VariantLight))
	case "dark":
		fyne.CurrentApp().Settings().SetTheme(NewCanvasPackThemeWithVariant(theme.VariantDark))
	default:
		fyne.CurrentApp().Settings().SetTheme(NewCanvasPackTheme())
	}
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := gallery.ExportAllData(path, a.appCfg, a.gal); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("canvaspack-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing a backup will replace your current settings and gallery.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := gallery.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.appCfg = backup.Config
					a.gal = backup.Gallery
					a.applyTheme()
					a.saveAppConfig()
					a.saveGallery()
					a.refreshGalleryList()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings and gallery) to a backup file,\nor restore from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}
