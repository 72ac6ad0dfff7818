package storage

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/yairfalse/tagsync/pkg/types"
)

// SheetsScope is the OAuth scope the Sheets backend needs
const SheetsScope = sheets.SpreadsheetsScope

// SheetsWorkbook implements Workbook on a Google spreadsheet. Reads use raw
// cell values so checkboxes arrive as booleans; writes are parsed as if
// typed by a user so HYPERLINK formulas evaluate.
type SheetsWorkbook struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
}

// NewSheetsWorkbook creates a Sheets client for one spreadsheet
func NewSheetsWorkbook(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsWorkbook, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsWorkbook{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Read implements Workbook
func (w *SheetsWorkbook) Read(ctx context.Context, r Range) ([]types.Row, error) {
	resp, err := w.values.Get(w.spreadsheetID, A1(r.Sheet, r.Read)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Name, err)
	}

	rows := make([]types.Row, 0, len(resp.Values))
	for _, values := range resp.Values {
		rows = append(rows, toRow(values))
	}
	return nonBlank(rows, r.Read.NumColumns), nil
}

// Write implements Workbook
func (w *SheetsWorkbook) Write(ctx context.Context, r Range, rows []types.Row) error {
	if len(rows) == 0 {
		return nil
	}

	body := &sheets.ValueRange{Values: toValues(fitRows(rows, r.Write.NumColumns))}
	_, err := w.values.Update(w.spreadsheetID, A1(r.Sheet, r.Write), body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", r.Name, err)
	}
	return nil
}

// Clear implements Workbook
func (w *SheetsWorkbook) Clear(ctx context.Context, r Range) error {
	_, err := w.values.Clear(w.spreadsheetID, A1(r.Sheet, r.Read), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", r.Name, err)
	}
	return nil
}

// Append implements Workbook
func (w *SheetsWorkbook) Append(ctx context.Context, sheet string, row types.Row) error {
	body := &sheets.ValueRange{Values: toValues([]types.Row{row})}
	_, err := w.values.Append(w.spreadsheetID, SheetColumns(sheet, len(row)), body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", sheet, err)
	}
	return nil
}

func toRow(values []interface{}) types.Row {
	row := make(types.Row, len(values))
	for i, value := range values {
		row[i] = cellString(value)
	}
	return row
}

// cellString normalizes an unformatted cell value
func cellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toValues(rows []types.Row) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
