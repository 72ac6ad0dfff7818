package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yairfalse/tagsync/pkg/types"
)

// LocalWorkbook stores each sheet as a JSON grid of strings in a directory.
// Index 0 of a grid is spreadsheet row 1.
type LocalWorkbook struct {
	mu    sync.Mutex
	dir   string
	files *atomicFiles
}

// NewLocalWorkbook opens or creates a workbook directory. Previous sheet
// contents are kept under .backup.
func NewLocalWorkbook(dir string) (*LocalWorkbook, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".tagsync", "workbook")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workbook directory: %w", err)
	}
	return &LocalWorkbook{
		dir:   dir,
		files: newAtomicFiles(filepath.Join(dir, ".backup")),
	}, nil
}

// Dir returns the workbook directory
func (w *LocalWorkbook) Dir() string {
	return w.dir
}

// Read implements Workbook
func (w *LocalWorkbook) Read(_ context.Context, r Range) ([]types.Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	grid, err := w.load(r.Sheet)
	if err != nil {
		return nil, err
	}

	var block []types.Row
	for i := r.Read.Row - 1; i < len(grid); i++ {
		block = append(block, slice(grid[i], r.Read.Column-1, r.Read.NumColumns))
	}
	return nonBlank(block, r.Read.NumColumns), nil
}

// Write implements Workbook
func (w *LocalWorkbook) Write(_ context.Context, r Range, rows []types.Row) error {
	if len(rows) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	grid, err := w.load(r.Sheet)
	if err != nil {
		return err
	}

	for i, row := range fitRows(rows, r.Write.NumColumns) {
		index := r.Write.Row - 1 + i
		for len(grid) <= index {
			grid = append(grid, types.Row{})
		}
		grid[index] = place(grid[index], r.Write.Column-1, row)
	}
	return w.save(r.Sheet, grid)
}

// Clear implements Workbook
func (w *LocalWorkbook) Clear(_ context.Context, r Range) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	grid, err := w.load(r.Sheet)
	if err != nil {
		return err
	}

	blank := types.NewRow(r.Read.NumColumns)
	for i := r.Read.Row - 1; i < len(grid); i++ {
		if len(grid[i]) > r.Read.Column-1 {
			grid[i] = place(grid[i], r.Read.Column-1, blank)
		}
	}
	return w.save(r.Sheet, trimTrailing(grid))
}

// Append implements Workbook
func (w *LocalWorkbook) Append(_ context.Context, sheet string, row types.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	grid, err := w.load(sheet)
	if err != nil {
		return err
	}
	grid = append(trimTrailing(grid), append(types.Row{}, row...))
	return w.save(sheet, grid)
}

// Sheet returns every row of a sheet including the header row
func (w *LocalWorkbook) Sheet(name string) ([]types.Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.load(name)
}

// SetSheet replaces a whole sheet
func (w *LocalWorkbook) SetSheet(name string, rows []types.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.save(name, rows)
}

func (w *LocalWorkbook) path(sheet string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(sheet), "-"))
	return filepath.Join(w.dir, slug+".json")
}

func (w *LocalWorkbook) load(sheet string) ([]types.Row, error) {
	data, err := w.files.read(w.path(sheet))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(data) == 0 {
		if header, ok := Headers[sheet]; ok {
			return []types.Row{append(types.Row{}, header...)}, nil
		}
		return nil, nil
	}

	var grid []types.Row
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("failed to decode sheet %q: %w", sheet, err)
	}
	return grid, nil
}

func (w *LocalWorkbook) save(sheet string, grid []types.Row) error {
	if grid == nil {
		grid = []types.Row{}
	}
	data, err := json.MarshalIndent(grid, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sheet %q: %w", sheet, err)
	}
	if err := w.files.write(w.path(sheet), data); err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
	}
	return nil
}

func slice(row types.Row, start, width int) types.Row {
	out := types.NewRow(width)
	for i := 0; i < width; i++ {
		if start+i < len(row) {
			out[i] = row[start+i]
		}
	}
	return out
}

func place(row types.Row, start int, cells types.Row) types.Row {
	if need := start + len(cells); len(row) < need {
		row = row.Padded(need)
	}
	copy(row[start:], cells)
	return row
}

// trimTrailing drops trailing rows with no content so appends land right
// after the last used row.
func trimTrailing(grid []types.Row) []types.Row {
	end := len(grid)
	for end > 0 && rowEmpty(grid[end-1]) {
		end--
	}
	return grid[:end]
}

func rowEmpty(row types.Row) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
