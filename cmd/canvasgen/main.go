// canvasgen generates rectangle-packing compositions from the command line,
// without the desktop UI. It accepts either explicit generation parameters or
// a plain-language prompt interpreted by a language model.
//
// Examples:
//
//	canvasgen -count 80 -min 8 -max 40 -png out.png
//	canvasgen -prompt "sparse large cool rectangles" -svg out.svg
//	canvasgen -zones zones.csv -png out.png -pdf sheet.pdf

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artfoundry/canvaspack/internal/engine"
	"github.com/artfoundry/canvaspack/internal/export"
	"github.com/artfoundry/canvaspack/internal/gallery"
	"github.com/artfoundry/canvaspack/internal/importer"
	"github.com/artfoundry/canvaspack/internal/logger"
	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/artfoundry/canvaspack/internal/prompt"
	"github.com/artfoundry/canvaspack/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "canvasgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		promptText = flag.String("prompt", "", "plain-language description interpreted into generation settings")
		width      = flag.Float64("width", 1024, "canvas width in pixels")
		height     = flag.Float64("height", 768, "canvas height in pixels")
		count      = flag.Int("count", 40, "number of rectangles to attempt")
		minSize    = flag.Int("min", 12, "minimum rectangle side in pixels")
		maxSize    = flag.Int("max", 64, "maximum rectangle side in pixels")
		colorHex   = flag.String("color", model.DefaultColor, "default rectangle color as #rrggbb")
		zonesPath  = flag.String("zones", "", "zone file to import (csv, xlsx or dxf)")
		seed       = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
		candidates = flag.Int("candidates", 4, "seeded packing runs compared, keeping the fullest")
		gap        = flag.Float64("gap", 2, "minimum spacing between rectangles in pixels")
		pngPath    = flag.String("png", "", "write the composition as PNG to this path")
		svgPath    = flag.String("svg", "", "write the composition as SVG to this path")
		pdfPath    = flag.String("pdf", "", "write a print sheet PDF to this path")
		showZones  = flag.Bool("show-zones", false, "draw zone outlines in SVG output")
		save       = flag.Bool("save", false, "add the result to the local gallery")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	minLevel := logger.LevelInfo
	if *verbose {
		minLevel = logger.LevelDebug
	}
	log := logger.New(os.Stderr, minLevel, "canvasgen")

	cfg := model.GenerationConfig{
		Color:   *colorHex,
		Count:   *count,
		MinSize: *minSize,
		MaxSize: *maxSize,
	}

	if *promptText != "" {
		interpreted, err := interpretPrompt(log, *width, *height, *promptText)
		if err != nil {
			// Offline or misconfigured model: keep going with the flag values.
			log.Warn("prompt interpretation unavailable, using flag values: %v", err)
		} else {
			cfg = interpreted
		}
	}

	if *zonesPath != "" {
		zones, err := importZones(log, *zonesPath)
		if err != nil {
			return err
		}
		cfg.Zones = append(cfg.Zones, zones...)
	}

	cfg = cfg.Sanitize()
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %.0fx%.0f", *width, *height)
	}

	packSeed := *seed
	if packSeed == 0 {
		packSeed = time.Now().UnixNano()
	}

	settings := engine.PackSettings{Gap: *gap, MaxAttemptsPerRect: 500}
	done := log.Step("pack")
	rects := engine.PackBest(settings, packSeed, *candidates, *width, *height,
		cfg.Count, cfg.MinSize, cfg.MaxSize)
	done()

	art := model.NewArtwork(*promptText, *width, *height, cfg, rects)
	log.Info("placed %d of %d rectangles, %.1f%% coverage",
		len(art.Rects), cfg.Count, art.Coverage())
	if len(art.Rects) < cfg.Count {
		log.Warn("canvas too crowded for the full count, result is degraded")
	}

	if *pngPath != "" {
		if err := render.SavePNG(*pngPath, art); err != nil {
			return fmt.Errorf("png export: %w", err)
		}
		log.Info("wrote %s", *pngPath)
	}
	if *svgPath != "" {
		opts := render.SVGOptions{ShowZones: *showZones}
		if err := render.SaveSVG(*svgPath, art, opts); err != nil {
			return fmt.Errorf("svg export: %w", err)
		}
		log.Info("wrote %s", *svgPath)
	}
	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, art); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		log.Info("wrote %s", *pdfPath)
	}

	if *save {
		appCfg, err := gallery.LoadAppConfig(gallery.DefaultConfigPath())
		if err != nil {
			appCfg = model.DefaultAppConfig()
		}
		gal, err := gallery.Load(gallery.DefaultGalleryPath())
		if err != nil {
			return fmt.Errorf("load gallery: %w", err)
		}
		gal.Add(art, appCfg.GalleryLimit)
		if err := gallery.Save(gallery.DefaultGalleryPath(), gal); err != nil {
			return fmt.Errorf("save gallery: %w", err)
		}
		log.Info("saved artwork %s to gallery", art.ID)
	}

	if *pngPath == "" && *svgPath == "" && *pdfPath == "" && !*save {
		// Nothing to write, print the composition as JSON for piping.
		data, err := json.MarshalIndent(art, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal artwork: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}

// interpretPrompt runs the description through the configured language model.
func interpretPrompt(log *logger.Logger, width, height float64, description string) (model.GenerationConfig, error) {
	appCfg, err := gallery.LoadAppConfig(gallery.DefaultConfigPath())
	if err != nil {
		appCfg = model.DefaultAppConfig()
	}

	var client prompt.Client
	switch appCfg.LLMProvider {
	case "local":
		client = prompt.NewLocalClient("")
	default:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return model.GenerationConfig{}, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		client = prompt.NewAnthropicClient(key, appCfg.LLMModel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return prompt.NewInterpreter(client, log).Interpret(ctx, width, height, description)
}

// importZones loads zone definitions from a CSV, Excel or DXF file.
func importZones(log *logger.Logger, path string) ([]model.Zone, error) {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path)
	default:
		result = importer.ImportCSV(path)
	}

	if len(result.Zones) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("import zones: %s", strings.Join(result.Errors, "; "))
	}
	for _, w := range result.Warnings {
		log.Warn("%s", w)
	}
	for _, e := range result.Errors {
		log.Warn("skipped row: %s", e)
	}
	log.Info("imported %d zone(s) from %s", len(result.Zones), path)
	return result.Zones, nil
}
