package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tagsync/pkg/types"
)

func newWorkbook(t *testing.T) *LocalWorkbook {
	t.Helper()
	wb, err := NewLocalWorkbook(t.TempDir())
	require.NoError(t, err)
	return wb
}

func TestLocalWorkbook_ReadSkipsBlankRowsAndPads(t *testing.T) {
	wb := newWorkbook(t)
	require.NoError(t, wb.SetSheet(SheetParamSettings, []types.Row{
		{"Tag Name", "Tag ID", "Event Name", "Type", "Name", "Value", "Action"},
		{"purchase", "5", "purchase", "parameter", "currency", "USD", "Create"},
		{"", "6", "ignored"},
		{"refund", "7"},
	}))

	rows, err := wb.Read(context.Background(), ParamSettings)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Create", rows[0].Cell(6))
	assert.Len(t, rows[1], 7)
	assert.Equal(t, "refund", rows[1].Cell(0))
}

func TestLocalWorkbook_ReadMissingSheet(t *testing.T) {
	wb := newWorkbook(t)

	rows, err := wb.Read(context.Background(), EventTags)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLocalWorkbook_ReplaceKeepsNeighbourColumns(t *testing.T) {
	wb := newWorkbook(t)
	ctx := context.Background()

	require.NoError(t, wb.Write(ctx, Accounts, []types.Row{{"Acme", "accounts/1"}}))
	require.NoError(t, wb.Write(ctx, Containers, []types.Row{
		{"Web", "accounts/1/containers/2"},
		{"App", "accounts/1/containers/3"},
	}))
	require.NoError(t, Replace(ctx, wb, Containers, []types.Row{{"Shop", "accounts/1/containers/4"}}))

	accounts, err := wb.Read(ctx, Accounts)
	require.NoError(t, err)
	assert.Equal(t, []types.Row{{"Acme", "accounts/1", ""}}, accounts)

	containers, err := wb.Read(ctx, Containers)
	require.NoError(t, err)
	assert.Equal(t, []types.Row{{"Shop", "accounts/1/containers/4", ""}}, containers)
}

func TestLocalWorkbook_WriteLeavesActionColumns(t *testing.T) {
	wb := newWorkbook(t)
	ctx := context.Background()
	require.NoError(t, wb.SetSheet(SheetVariableUsage, []types.Row{
		{"header"},
		{"old", "path", "", "", "", "", "", "", "true"},
	}))

	require.NoError(t, wb.Write(ctx, VariableUsage, []types.Row{{"new", "path2"}}))

	rows, err := wb.Read(ctx, VariableUsage)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Cell(0))
	assert.True(t, rows[0].FlagFromEnd(1), "write shape must not touch the delete flag column")
}

func TestLocalWorkbook_WriteZeroRowsIsNoop(t *testing.T) {
	wb := newWorkbook(t)

	require.NoError(t, wb.Write(context.Background(), DataDictionary, nil))

	_, err := os.Stat(filepath.Join(wb.Dir(), "tag-data-dictionary.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalWorkbook_AppendAfterLastUsedRow(t *testing.T) {
	wb := newWorkbook(t)
	ctx := context.Background()
	require.NoError(t, wb.SetSheet(SheetChangelog, []types.Row{
		{"Date", "Name", "Type", "ID", "Action", "URL", "User"},
		{},
	}))

	require.NoError(t, wb.Append(ctx, SheetChangelog, types.Row{"3/7/2024", "a"}))
	require.NoError(t, wb.Append(ctx, SheetChangelog, types.Row{"3/7/2024", "b"}))

	grid, err := wb.Sheet(SheetChangelog)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "a", grid[1].Cell(1))
	assert.Equal(t, "b", grid[2].Cell(1))
}

func TestLocalWorkbook_KeepsBackup(t *testing.T) {
	wb := newWorkbook(t)
	require.NoError(t, wb.SetSheet(SheetChangelog, []types.Row{{"first"}}))
	require.NoError(t, wb.SetSheet(SheetChangelog, []types.Row{{"second"}}))

	backup, err := os.ReadFile(filepath.Join(wb.Dir(), ".backup", "changelog.json.backup"))
	require.NoError(t, err)
	assert.Contains(t, string(backup), "first")
}

func TestA1(t *testing.T) {
	assert.Equal(t, "A", ColumnLetters(1))
	assert.Equal(t, "Z", ColumnLetters(26))
	assert.Equal(t, "AA", ColumnLetters(27))
	assert.Equal(t, "AZ", ColumnLetters(52))

	assert.Equal(t, "'Event Tag Settings'!A2:AA", A1(SheetEventTags, EventTags.Read))
	assert.Equal(t, "'GTM Workspace'!G2:H", A1(SheetWorkspace, Workspaces.Write))
	assert.Equal(t, "'Bob''s'!A:G", SheetColumns("Bob's", 7))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "true", cellString(true))
	assert.Equal(t, "1700000000000", cellString(float64(1700000000000)))
	assert.Equal(t, "0.5", cellString(0.5))
	assert.Equal(t, "x", cellString("x"))
}

func TestLocalWorkbook_MissingSheetStartsWithHeader(t *testing.T) {
	wb := newWorkbook(t)
	ctx := context.Background()

	require.NoError(t, wb.Append(ctx, SheetChangelog, types.Row{"3/7/2024", "purchase_event"}))

	grid, err := wb.Sheet(SheetChangelog)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, Headers[SheetChangelog], grid[0])

	rows, err := wb.Read(ctx, Changelog)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "purchase_event", rows[0].Cell(1))
}
