package app

import (
	"context"

	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// WriteValidation refreshes the {{variable}} dropdown list
func (a *App) WriteValidation(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	variables := a.api.ListVariables(ctx, ws.Path)
	n, err := a.writeVariableReferences(ctx, ws, variables)
	if err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "variables validation", Sheet: storage.SheetValidation, Rows: n}, nil
}

func (a *App) writeVariableReferences(ctx context.Context, ws mapping.WorkspaceRef, variables []types.Variable) (int, error) {
	rows := mapping.VariableReferenceRows(variables, a.api.ListBuiltInVariables(ctx, ws.Path))
	if err := a.replace(ctx, storage.ValidationVariables, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
