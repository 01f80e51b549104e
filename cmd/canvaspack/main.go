// CanvasPack desktop studio
//
// A cross-platform desktop application for generating abstract
// rectangle-packing compositions from plain-language prompts.
//
// Build:
//   go build -o canvaspack ./cmd/canvaspack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o canvaspack.exe ./cmd/canvaspack
//   GOOS=darwin  GOARCH=amd64 go build -o canvaspack-darwin ./cmd/canvaspack
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/artfoundry/canvaspack/internal/ui"
)

func main() {
	application := app.NewWithID("com.artfoundry.canvaspack")
	window := application.NewWindow("CanvasPack")

	appUI := ui.NewApp(window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 750))
	window.CenterOnScreen()
	window.ShowAndRun()
}
