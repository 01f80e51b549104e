package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/artfoundry/canvaspack/internal/engine"
	"github.com/artfoundry/canvaspack/internal/export"
	"github.com/artfoundry/canvaspack/internal/gallery"
	"github.com/artfoundry/canvaspack/internal/logger"
	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/artfoundry/canvaspack/internal/prompt"
	"github.com/artfoundry/canvaspack/internal/render"
	"github.com/artfoundry/canvaspack/internal/ui/widgets"
)

// bestOfCandidates is the number of seeded packing runs compared per generation.
const bestOfCandidates = 4

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	log    *logger.Logger

	appCfg    model.AppConfig
	config    model.GenerationConfig
	canvasW   float64
	canvasH   float64
	current   *model.Artwork
	gal       gallery.Gallery
	history   *History
	showZones bool

	tabs *container.AppTabs

	// UI references for dynamic updates
	promptEntry      *widget.Entry
	zonesContainer   *fyne.Container
	galleryContainer *fyne.Container
	resultContainer  *fyne.Container
}

func NewApp(window fyne.Window) *App {
	log := logger.Default().WithPrefix("ui")

	appCfg, err := gallery.LoadAppConfig(gallery.DefaultConfigPath())
	if err != nil {
		log.Warn("could not load app config, using defaults: %v", err)
		appCfg = model.DefaultAppConfig()
	}

	gal, err := gallery.Load(gallery.DefaultGalleryPath())
	if err != nil {
		log.Warn("could not load gallery: %v", err)
	}

	return &App{
		window:  window,
		log:     log,
		appCfg:  appCfg,
		config:  model.DefaultConfig(),
		canvasW: appCfg.DefaultCanvasWidth,
		canvasH: appCfg.DefaultCanvasHeight,
		gal:     gal,
		history: NewHistory(),
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Composition", func() {
			a.pushHistory("New Composition")
			a.config = model.DefaultConfig()
			a.current = nil
			a.refreshResults()
			a.refreshZonesList()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Zones from CSV...", func() {
			a.importZonesCSV()
		}),
		fyne.NewMenuItem("Import Zones from Excel...", func() {
			a.importZonesExcel()
		}),
		fyne.NewMenuItem("Import Zones from DXF...", func() {
			a.importZonesDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() {
			a.exportPNG()
		}),
		fyne.NewMenuItem("Export SVG...", func() {
			a.exportSVG()
		}),
		fyne.NewMenuItem("Export Print Sheet (PDF)...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Zones", func() {
			a.pushHistory("Clear Zones")
			a.config.Zones = nil
			a.refreshZonesList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Generate", func() {
			a.runGenerate()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItem("Generate from Prompt", func() {
			a.runInterpretAndGenerate()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CanvasPack",
		"CanvasPack\n\n"+
			"A desktop studio for generating abstract rectangle-packing\n"+
			"compositions from plain-language descriptions.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	generateTab := container.NewTabItem("Generate", a.buildGeneratePanel())
	zonesTab := container.NewTabItem("Zones", a.buildZonesPanel())
	galleryTab := container.NewTabItem("Gallery", a.buildGalleryPanel())

	a.tabs = container.NewAppTabs(generateTab, zonesTab, galleryTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Generate Panel ────────────────────────────────────────

func (a *App) buildGeneratePanel() fyne.CanvasObject {
	a.promptEntry = widget.NewEntry()
	a.promptEntry.SetPlaceHolder("Describe the composition, e.g. \"a dense field of small warm squares\"")

	generateBtn := widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), func() {
		a.runGenerate()
	})
	interpretBtn := widget.NewButtonWithIcon("From Prompt", theme.SearchIcon(), func() {
		a.runInterpretAndGenerate()
	})

	topBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(interpretBtn, generateBtn),
		a.promptEntry,
	)

	a.resultContainer = container.NewStack(
		widgets.RenderArtwork(nil, false),
	)

	return container.NewBorder(
		topBar,
		nil,
		a.buildConfigSidebar(),
		nil,
		a.resultContainer,
	)
}

func (a *App) buildConfigSidebar() fyne.CanvasObject {
	// Helper to create a bound int entry
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

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.0f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	colorEntry := widget.NewEntry()
	colorEntry.SetText(a.config.Color)
	colorEntry.OnChanged = func(text string) {
		if model.ValidHexColor(text) {
			a.config.Color = text
		}
	}

	zonesCheck := widget.NewCheck("Show zone outlines", func(b bool) {
		a.showZones = b
		a.refreshResults()
	})

	canvasSection := widget.NewCard("Canvas", "", container.NewGridWithColumns(2,
		widget.NewLabel("Width (px)"), floatEntry(&a.canvasW),
		widget.NewLabel("Height (px)"), floatEntry(&a.canvasH),
	))

	rectSection := widget.NewCard("Rectangles", "", container.NewGridWithColumns(2,
		widget.NewLabel("Count"), intEntry(&a.config.Count),
		widget.NewLabel("Min Size (px)"), intEntry(&a.config.MinSize),
		widget.NewLabel("Max Size (px)"), intEntry(&a.config.MaxSize),
		widget.NewLabel("Default Color"), colorEntry,
	))

	viewSection := widget.NewCard("View", "", container.NewVBox(zonesCheck))

	return container.NewVScroll(container.NewVBox(
		canvasSection,
		rectSection,
		viewSection,
	))
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderArtwork(a.current, a.showZones))
	a.resultContainer.Refresh()
}

// ─── Gallery Panel ─────────────────────────────────────────

func (a *App) buildGalleryPanel() fyne.CanvasObject {
	a.galleryContainer = container.NewVBox()
	a.refreshGalleryList()

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Saved Artworks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			widget.NewButtonWithIcon("Export Gallery...", theme.DocumentSaveIcon(), func() {
				a.exportGallery()
			}),
			widget.NewButtonWithIcon("Import Gallery...", theme.FolderOpenIcon(), func() {
				a.importGallery()
			}),
		),
		nil, nil, nil,
		container.NewVScroll(a.galleryContainer),
	)
}

func (a *App) refreshGalleryList() {
	if a.galleryContainer == nil {
		return
	}
	a.galleryContainer.RemoveAll()

	if len(a.gal.Artworks) == 0 {
		a.galleryContainer.Add(widget.NewLabel("No saved artworks yet. Generate one to begin."))
		return
	}

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Title", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Created", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Rectangles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.galleryContainer.Add(header)
	a.galleryContainer.Add(widget.NewSeparator())

	for i := range a.gal.Artworks {
		art := a.gal.Artworks[i]
		row := container.NewGridWithColumns(5,
			widget.NewLabel(art.Title()),
			widget.NewLabel(art.CreatedAt.Local().Format("2006-01-02 15:04")),
			widget.NewLabel(fmt.Sprintf("%d of %d", len(art.Rects), art.Config.Count)),
			newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open in canvas", func() {
				a.pushHistory("Open from Gallery")
				loaded := art
				a.current = &loaded
				a.config = loaded.Config
				a.canvasW = loaded.Width
				a.canvasH = loaded.Height
				a.refreshResults()
				a.refreshZonesList()
				a.tabs.SelectIndex(0)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove from gallery", func() {
				a.gal.Remove(art.ID)
				a.saveGallery()
				a.refreshGalleryList()
			}),
		)
		a.galleryContainer.Add(row)
	}
}

func (a *App) exportGallery() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := gallery.Export(writer.URI().Path(), a.gal); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Gallery exported to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName("gallery.json")
	d.Show()
}

func (a *App) importGallery() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := gallery.Import(reader.URI().Path(), a.gal)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.gal = merged
		a.saveGallery()
		a.refreshGalleryList()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Gallery now contains %d artworks.", len(a.gal.Artworks)),
			a.window)
	}, a.window)
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runGenerate() {
	a.config = a.config.Sanitize()
	if a.canvasW <= 0 || a.canvasH <= 0 {
		dialog.ShowError(fmt.Errorf("canvas dimensions must be positive"), a.window)
		return
	}

	a.pushHistory("Generate")

	settings := engine.PackSettings{
		Gap:                a.appCfg.DefaultGap,
		MaxAttemptsPerRect: a.appCfg.DefaultMaxAttempts,
	}

	done := a.log.Step("generate")
	rects := engine.PackBest(settings, time.Now().UnixNano(), bestOfCandidates,
		a.canvasW, a.canvasH, a.config.Count, a.config.MinSize, a.config.MaxSize)
	done()

	art := model.NewArtwork(a.promptText(), a.canvasW, a.canvasH, a.config, rects)
	a.current = &art

	a.gal.Add(art, a.appCfg.GalleryLimit)
	a.saveGallery()

	a.refreshResults()
	a.refreshGalleryList()
}

func (a *App) runInterpretAndGenerate() {
	description := a.promptText()
	if description == "" {
		dialog.ShowInformation("No prompt",
			"Type a description first, or use Generate for the current settings.", a.window)
		return
	}

	client, err := a.buildLLMClient()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	interp := prompt.NewInterpreter(client, a.log)
	progress := dialog.NewCustomWithoutButtons("Interpreting prompt...",
		widget.NewProgressBarInfinite(), a.window)
	progress.Show()

	width, height := a.canvasW, a.canvasH
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cfg, err := interp.Interpret(ctx, width, height, description)

		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				dialog.ShowError(fmt.Errorf("prompt interpretation failed: %w", err), a.window)
				return
			}
			a.config = cfg
			a.refreshZonesList()
			a.runGenerate()
		})
	}()
}

// buildLLMClient constructs the configured language model client.
func (a *App) buildLLMClient() (prompt.Client, error) {
	switch a.appCfg.LLMProvider {
	case "local":
		return prompt.NewLocalClient(""), nil
	default:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set; set it or switch the provider to \"local\" in Settings")
		}
		return prompt.NewAnthropicClient(key, a.appCfg.LLMModel), nil
	}
}

func (a *App) promptText() string {
	if a.promptEntry == nil {
		return ""
	}
	return strings.TrimSpace(a.promptEntry.Text)
}

// pushHistory saves the current state before a modification.
func (a *App) pushHistory(label string) {
	var rects []model.Rect
	if a.current != nil {
		rects = a.current.Rects
	}
	a.history.Push(MakeSnapshot(a.config, rects, label))
}

func (a *App) currentSnapshot() Snapshot {
	var rects []model.Rect
	if a.current != nil {
		rects = a.current.Rects
	}
	return MakeSnapshot(a.config, rects, "current")
}

func (a *App) undo() {
	snap, ok := a.history.Undo(a.currentSnapshot())
	if !ok {
		return
	}
	a.restoreSnapshot(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(a.currentSnapshot())
	if !ok {
		return
	}
	a.restoreSnapshot(snap)
}

func (a *App) restoreSnapshot(snap Snapshot) {
	a.config = snap.Config
	if a.current != nil {
		art := *a.current
		art.Config = snap.Config
		art.Rects = snap.Rects
		a.current = &art
	}
	a.refreshResults()
	a.refreshZonesList()
}

// saveGallery persists the gallery to disk.
func (a *App) saveGallery() {
	if err := gallery.Save(gallery.DefaultGalleryPath(), a.gal); err != nil {
		a.log.Error("failed to save gallery: %v", err)
		dialog.ShowError(fmt.Errorf("failed to save gallery: %w", err), a.window)
	}
}

// saveAppConfig persists the application settings to disk.
func (a *App) saveAppConfig() {
	if err := gallery.SaveAppConfig(gallery.DefaultConfigPath(), a.appCfg); err != nil {
		a.log.Error("failed to save settings: %v", err)
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

// rememberExport records an export path in the recent list, newest first.
func (a *App) rememberExport(path string) {
	recent := []string{path}
	for _, p := range a.appCfg.RecentExports {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	a.appCfg.RecentExports = recent
	a.saveAppConfig()
}

// ─── Export Functions ──────────────────────────────────────

func (a *App) exportPNG() {
	if a.current == nil {
		dialog.ShowInformation("No artwork", "Generate an artwork first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := render.SavePNG(path, *a.current); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberExport(path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("PNG saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.current.ID + ".png")
	d.Show()
}

func (a *App) exportSVG() {
	if a.current == nil {
		dialog.ShowInformation("No artwork", "Generate an artwork first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		opts := render.SVGOptions{ShowZones: a.showZones}
		if err := render.SaveSVG(path, *a.current, opts); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberExport(path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("SVG saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.current.ID + ".svg")
	d.Show()
}

func (a *App) exportPDF() {
	if a.current == nil {
		dialog.ShowInformation("No artwork", "Generate an artwork first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.ExportPDF(path, *a.current); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberExport(path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Print sheet saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.current.ID + ".pdf")
	d.Show()
}
