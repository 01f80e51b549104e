// Package importer provides CSV, Excel, and DXF import functionality for
// color zone lists. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Zones    []model.Zone
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Shape  int
	X      int
	Y      int
	Radius int
	Width  int
	Height int
	Color  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"shape":  {"shape", "type", "kind", "form"},
	"x":      {"x", "cx", "center x", "centerx", "left"},
	"y":      {"y", "cy", "center y", "centery", "top"},
	"radius": {"radius", "r", "rad"},
	"width":  {"width", "w"},
	"height": {"height", "h"},
	"color":  {"color", "colour", "hex", "fill"},
}

// zonePalette supplies fallback colors for zones imported without one.
var zonePalette = []string{
	"#4caf50", // green
	"#2196f3", // blue
	"#ff9800", // orange
	"#9c27b0", // purple
	"#00bcd4", // cyan
	"#f44336", // red
	"#ffeb3b", // yellow
	"#795548", // brown
}

// paletteColor returns the fallback color for the nth imported zone.
func paletteColor(n int) string {
	return zonePalette[n%len(zonePalette)]
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Shape:  -1,
		X:      -1,
		Y:      -1,
		Radius: -1,
		Width:  -1,
		Height: -1,
		Color:  -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "shape":
						if mapping.Shape == -1 {
							mapping.Shape = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					case "radius":
						if mapping.Radius == -1 {
							mapping.Radius = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "color":
						if mapping.Color == -1 {
							mapping.Color = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Shape, X, Y, Radius/Width, Height, Color.
		// Circle rows use column 3 as the radius and leave column 4 empty.
		return ColumnMapping{
			Shape:  0,
			X:      1,
			Y:      2,
			Radius: 3,
			Width:  3,
			Height: 4,
			Color:  5,
		}, false
	}

	return mapping, true
}

// parseShape normalizes a shape cell to a ZoneShape.
// It returns the shape and a boolean indicating whether the string was recognized.
func parseShape(s string) (model.ZoneShape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "c", "round":
		return model.ZoneCircle, true
	case "rectangle", "rect", "r", "box", "square":
		return model.ZoneRectangle, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Zone from a row using the given column mapping.
// Returns the zone, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, zoneCount int) (model.Zone, string, string) {
	shapeStr := getCell(row, mapping.Shape)
	shape, ok := parseShape(shapeStr)
	if !ok {
		return model.Zone{}, fmt.Sprintf("%s: Unknown shape '%s'", rowLabel, shapeStr), ""
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return model.Zone{}, fmt.Sprintf("%s: Missing x value", rowLabel), ""
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return model.Zone{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr), ""
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return model.Zone{}, fmt.Sprintf("%s: Missing y value", rowLabel), ""
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return model.Zone{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr), ""
	}

	var warning string
	color := getCell(row, mapping.Color)
	if color == "" {
		color = paletteColor(zoneCount)
		warning = fmt.Sprintf("%s: No color given, assigned %s", rowLabel, color)
	} else if !model.ValidHexColor(color) {
		fallback := paletteColor(zoneCount)
		warning = fmt.Sprintf("%s: Invalid color '%s', assigned %s", rowLabel, color, fallback)
		color = fallback
	}

	switch shape {
	case model.ZoneCircle:
		radiusStr := getCell(row, mapping.Radius)
		if radiusStr == "" {
			return model.Zone{}, fmt.Sprintf("%s: Missing radius value", rowLabel), ""
		}
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return model.Zone{}, fmt.Sprintf("%s: Invalid radius '%s'", rowLabel, radiusStr), ""
		}
		if radius <= 0 {
			return model.Zone{}, fmt.Sprintf("%s: Radius must be positive", rowLabel), ""
		}
		return model.NewCircleZone(x, y, radius, color), "", warning

	default:
		widthStr := getCell(row, mapping.Width)
		if widthStr == "" {
			return model.Zone{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
		}
		width, err := strconv.ParseFloat(widthStr, 64)
		if err != nil {
			return model.Zone{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
		}
		heightStr := getCell(row, mapping.Height)
		if heightStr == "" {
			return model.Zone{}, fmt.Sprintf("%s: Missing height value", rowLabel), ""
		}
		height, err := strconv.ParseFloat(heightStr, 64)
		if err != nil {
			return model.Zone{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
		}
		if width <= 0 || height <= 0 {
			return model.Zone{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
		}
		return model.NewRectZone(x, y, width, height, color), "", warning
	}
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports zones from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports zones from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports zones from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into zones.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Shape == -1 {
			missing = append(missing, "Shape")
		}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check whether the first row looks like zone data.
		// An unrecognized header has a non-shape word in the first column.
		if len(rows[0]) >= 3 {
			if _, ok := parseShape(rows[0][0]); !ok {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		zone, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Zones))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Zones = append(result.Zones, zone)
	}

	return result
}
