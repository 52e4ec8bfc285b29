package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/calvescott/ledgerflow/internal/model"
)

// Section layout inside a month tab:
//
//	row N    === <label> ===          (colored across A:F)
//	row N+1  Date | Category | ...    (the six-column title row)
//	row N+2+ data rows, contiguous, terminated by the first blank row
//
// The summary slot occupies columns H:I starting at row N.
const (
	dataColumns      = 6
	summaryColumn    = 8
	maxSummaryLines  = 6
	rowsBelowAnchor  = 2 // marker row + title row
	gapBeforeSection = 2 // one blank row between sections
)

// ErrSectionMismatch indicates an anchor was found but the title row below
// it is absent or malformed. Appending there would misalign the table, so
// the engine refuses.
var ErrSectionMismatch = errors.New("section title row missing or malformed")

// StoreError wraps a failed remote tabular-store call. The engine performs
// no retry and no rollback; the store is left in whatever partial state the
// failed call produced.
type StoreError struct {
	Err error
	Op  string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Engine locates-or-creates labeled sections inside a shared monthly table
// and appends rows without touching neighboring sections.
type Engine struct {
	store  TabularStore
	logger *slog.Logger
}

// NewEngine creates a section upsert engine on top of a tabular store.
func NewEngine(store TabularStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// Upsert writes rows into the (monthKey, label) section, creating the
// section at the bottom of the tab when it does not exist yet, and always
// rewrites the summary slot beside the section header. Returns the anchor
// row of the section's header marker.
//
// Repeated calls with the same rows append duplicates: writes are
// at-least-once and the engine does not deduplicate. Two writers racing
// on the same label can each miss the marker and create the section
// twice; callers that need exactly one section must serialize.
func (e *Engine) Upsert(ctx context.Context, monthKey, label string, headerColor Color, rows [][]string, summary []string) (int, error) {
	tabID, err := e.store.EnsureTab(ctx, monthKey)
	if err != nil {
		return 0, &StoreError{Op: "ensure tab", Err: err}
	}

	column, err := e.store.GetColumn(ctx, monthKey, 1)
	if err != nil {
		return 0, &StoreError{Op: "get column", Err: err}
	}

	marker := SectionMarker(label)
	anchor := findAnchor(column, marker)

	if anchor == 0 {
		anchor, err = e.createSection(ctx, monthKey, tabID, marker, column, headerColor, rows)
	} else {
		err = e.appendToSection(ctx, monthKey, anchor, column, rows)
	}
	if err != nil {
		return 0, err
	}

	if err := e.writeSummary(ctx, monthKey, anchor, summary); err != nil {
		return 0, err
	}

	e.logger.Info("section upsert complete",
		"month", monthKey,
		"label", label,
		"anchor", anchor,
		"rows", len(rows))

	return anchor, nil
}

// findAnchor scans the first column for the marker cell and returns its
// 1-based row, or 0 when the section does not exist.
func findAnchor(column []string, marker string) int {
	target := strings.TrimSpace(marker)
	for i, cell := range column {
		if strings.TrimSpace(cell) == target {
			return i + 1
		}
	}
	return 0
}

// createSection appends a new section two rows below the last populated
// row: marker row, title row, then the data rows, as one contiguous write.
// The header color is applied to the marker row only.
func (e *Engine) createSection(ctx context.Context, monthKey string, tabID int64, marker string, column []string, headerColor Color, rows [][]string) (int, error) {
	last := len(column)
	if last < 1 {
		last = 1
	}
	start := last + gapBeforeSection

	payload := make([][]string, 0, rowsBelowAnchor+len(rows))
	payload = append(payload, []string{marker}, model.Header)
	payload = append(payload, rows...)

	if err := e.store.UpdateCells(ctx, monthKey, A1(start, 1), payload); err != nil {
		return 0, &StoreError{Op: "create section", Err: err}
	}

	if err := e.store.SetBackground(ctx, tabID, start, start, 1, dataColumns, headerColor); err != nil {
		return 0, &StoreError{Op: "color header", Err: err}
	}

	return start, nil
}

// appendToSection writes rows at the first blank row at or below the
// section's data region, or one past its last populated row. The marker
// and title rows are left untouched.
func (e *Engine) appendToSection(ctx context.Context, monthKey string, anchor int, column []string, rows [][]string) error {
	if strings.TrimSpace(cellAt(column, anchor+1)) != model.Header[0] {
		return fmt.Errorf("section at row %d in %s: %w", anchor, monthKey, ErrSectionMismatch)
	}

	appendAt := anchor + rowsBelowAnchor
	for row := anchor + rowsBelowAnchor; row <= len(column); row++ {
		if strings.TrimSpace(cellAt(column, row)) == "" {
			appendAt = row
			break
		}
		appendAt = row + 1
	}

	if err := e.store.UpdateCells(ctx, monthKey, A1(appendAt, 1), rows); err != nil {
		return &StoreError{Op: "append rows", Err: err}
	}
	return nil
}

// writeSummary overwrites the fixed summary slot beside the section
// header. Each line splits on its first colon into a label/value pair;
// lines without a colon occupy the first summary column whole.
func (e *Engine) writeSummary(ctx context.Context, monthKey string, anchor int, lines []string) error {
	if len(lines) > maxSummaryLines {
		lines = lines[:maxSummaryLines]
	}

	values := make([][]string, 0, len(lines))
	for _, line := range lines {
		if left, right, ok := strings.Cut(line, ":"); ok {
			values = append(values, []string{strings.TrimSpace(left), strings.TrimSpace(right)})
		} else {
			values = append(values, []string{strings.TrimSpace(line), ""})
		}
	}
	if len(values) == 0 {
		return nil
	}

	if err := e.store.UpdateCells(ctx, monthKey, A1(anchor, summaryColumn), values); err != nil {
		return &StoreError{Op: "write summary", Err: err}
	}
	return nil
}

// cellAt returns the cell at a 1-based row, treating rows past the end of
// the fetched column as blank.
func cellAt(column []string, row int) string {
	if row < 1 || row > len(column) {
		return ""
	}
	return column[row-1]
}
