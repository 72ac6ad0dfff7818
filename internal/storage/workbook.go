package storage

import (
	"context"

	"github.com/yairfalse/tagsync/pkg/types"
)

// Workbook is the tabular store the console reads rows from and writes
// listings into.
type Workbook interface {
	// Read returns the rows of the read shape whose first cell is not
	// blank, each padded to the read width.
	Read(ctx context.Context, r Range) ([]types.Row, error)
	// Write overwrites cells starting at the write shape. Zero rows is a
	// no-op.
	Write(ctx context.Context, r Range, rows []types.Row) error
	// Clear empties the read shape from its first row to the end of the sheet
	Clear(ctx context.Context, r Range) error
	// Append adds a row after the last used row of the sheet
	Append(ctx context.Context, sheet string, row types.Row) error
}

// Shape locates a block of columns. Row and Column are 1-based.
type Shape struct {
	Row        int
	Column     int
	NumColumns int
}

// Range is a named region of a sheet with separate read and write shapes.
// Write is narrower than Read when trailing columns hold user input such as
// action checkboxes.
type Range struct {
	Sheet string
	Name  string
	Read  Shape
	Write Shape
}

// Replace clears r and writes rows into it
func Replace(ctx context.Context, wb Workbook, r Range, rows []types.Row) error {
	if err := wb.Clear(ctx, r); err != nil {
		return err
	}
	return wb.Write(ctx, r, rows)
}

func fitRows(rows []types.Row, width int) []types.Row {
	out := make([]types.Row, len(rows))
	for i, row := range rows {
		out[i] = row.Padded(width)
	}
	return out
}

func nonBlank(rows []types.Row, width int) []types.Row {
	out := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if row.IsBlank() {
			continue
		}
		out = append(out, row.Padded(width))
	}
	return out
}
