package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// MockStore is an in-memory TabularStore for tests. It keeps a sparse cell
// grid per tab and records background calls so upsert behavior can be
// asserted without a live spreadsheet.
type MockStore struct {
	tabs            map[string]*mockTab
	errByOp         map[string]error
	nextTabID       int64
	BackgroundCalls []BackgroundCall
	mu              sync.Mutex
}

type mockTab struct {
	id    int64
	cells map[[2]int]string // (row, col), 1-based
}

// BackgroundCall records one SetBackground invocation.
type BackgroundCall struct {
	TabID    int64
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
	Color    Color
}

// NewMockStore creates an empty mock tabular store.
func NewMockStore() *MockStore {
	return &MockStore{
		tabs:    make(map[string]*mockTab),
		errByOp: make(map[string]error),
	}
}

// FailWith makes the named operation ("ensure", "get", "update", "background")
// return err.
func (m *MockStore) FailWith(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errByOp[op] = err
}

// EnsureTab implements TabularStore.
func (m *MockStore) EnsureTab(_ context.Context, title string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errByOp["ensure"]; err != nil {
		return 0, err
	}
	return m.tab(title).id, nil
}

// GetColumn implements TabularStore.
func (m *MockStore) GetColumn(_ context.Context, title string, column int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errByOp["get"]; err != nil {
		return nil, err
	}

	tab := m.tab(title)
	last := 0
	for key, val := range tab.cells {
		if key[1] == column && val != "" && key[0] > last {
			last = key[0]
		}
	}

	cells := make([]string, last)
	for row := 1; row <= last; row++ {
		cells[row-1] = tab.cells[[2]int{row, column}]
	}
	return cells, nil
}

// UpdateCells implements TabularStore.
func (m *MockStore) UpdateCells(_ context.Context, title, startCell string, values [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errByOp["update"]; err != nil {
		return err
	}

	row, col, err := parseA1(startCell)
	if err != nil {
		return err
	}

	tab := m.tab(title)
	for i, rowValues := range values {
		for j, cell := range rowValues {
			tab.cells[[2]int{row + i, col + j}] = cell
		}
	}
	return nil
}

// SetBackground implements TabularStore.
func (m *MockStore) SetBackground(_ context.Context, tabID int64, startRow, endRow, startCol, endCol int, color Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errByOp["background"]; err != nil {
		return err
	}

	m.BackgroundCalls = append(m.BackgroundCalls, BackgroundCall{
		TabID:    tabID,
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
		Color:    color,
	})
	return nil
}

// Cell returns the value at a 1-based (row, col) on a tab.
func (m *MockStore) Cell(title string, row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tab(title).cells[[2]int{row, col}]
}

// SetCell writes one cell directly, bypassing the store operations.
func (m *MockStore) SetCell(title string, row, col int, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tab(title).cells[[2]int{row, col}] = value
}

func (m *MockStore) tab(title string) *mockTab {
	if t, ok := m.tabs[title]; ok {
		return t
	}
	m.nextTabID++
	t := &mockTab{id: m.nextTabID, cells: make(map[[2]int]string)}
	m.tabs[title] = t
	return t
}

var a1Re = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

func parseA1(cell string) (row, col int, err error) {
	match := a1Re.FindStringSubmatch(cell)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid A1 cell %q", cell)
	}
	for _, r := range match[1] {
		col = col*26 + int(r-'A'+1)
	}
	row, err = strconv.Atoi(match[2])
	return row, col, err
}
