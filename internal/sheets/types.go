// Package sheets implements the monthly-table section upsert protocol on
// top of the Google Sheets API.
package sheets

import (
	"context"
	"fmt"
)

// Color is a background color with 0-1 fractional channels.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// headerColors keys section header colors by bank name.
var headerColors = map[string]Color{
	"RBC":        {Red: 0.86, Green: 0.93, Blue: 1.0},
	"Scotiabank": {Red: 0.98, Green: 0.92, Blue: 0.86},
}

// defaultHeaderColor is used for banks without a palette entry.
var defaultHeaderColor = Color{Red: 0.92, Green: 0.92, Blue: 0.92}

// HeaderColorFor returns the section header color for a bank.
func HeaderColorFor(bank string) Color {
	if c, ok := headerColors[bank]; ok {
		return c
	}
	return defaultHeaderColor
}

// SectionMarker returns the decorated header-marker cell for a section
// label. Lookup matches this string character for character, so its form
// must never change once sections exist in a live spreadsheet.
func SectionMarker(label string) string {
	return fmt.Sprintf("=== %s ===", label)
}

// TabularStore is the narrow interface the upsert engine needs from the
// remote spreadsheet. Row and column indexes are 1-based; SetBackground
// bounds are inclusive.
type TabularStore interface {
	// EnsureTab returns the tab's id, creating the tab if absent.
	EnsureTab(ctx context.Context, title string) (int64, error)
	// GetColumn returns one column's cells from row 1 through the last
	// populated row. Interior blanks come back as empty strings.
	GetColumn(ctx context.Context, title string, column int) ([]string, error)
	// UpdateCells writes a rectangular block of values starting at startCell.
	UpdateCells(ctx context.Context, title, startCell string, values [][]string) error
	// SetBackground colors a cell range on the given tab.
	SetBackground(ctx context.Context, tabID int64, startRow, endRow, startCol, endCol int, color Color) error
}

// A1 converts a 1-based (row, column) pair to A1 notation.
func A1(row, col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return fmt.Sprintf("%s%d", letters, row)
}
