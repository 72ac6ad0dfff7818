package app

import (
	"context"

	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// ListParams writes every event parameter and user property of the
// workspace's GA4 event tags
func (a *App) ListParams(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	tags := a.api.ListTags(ctx, ws.Path)
	if _, err := a.writeVariableReferences(ctx, ws, a.api.ListVariables(ctx, ws.Path)); err != nil {
		return nil, err
	}

	rows := mapping.ParamRows(tags)
	if err := a.replace(ctx, storage.ParamSettings, rows); err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "params list", Sheet: storage.SheetParamSettings, Rows: len(rows)}, nil
}

// ListParamTags writes one blank row per GA4 event tag for the user to fill
func (a *App) ListParamTags(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapping.TagSeedRows(a.api.ListTags(ctx, ws.Path))
	if err := a.replace(ctx, storage.ParamSettings, rows); err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "params tags", Sheet: storage.SheetParamSettings, Rows: len(rows)}, nil
}

// ModifyParams applies the Create and Delete rows of the parameter sheet,
// one update per affected tag
func (a *App) ModifyParams(ctx context.Context) (*types.Report, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := a.read(ctx, storage.ParamSettings)
	if err != nil {
		return nil, err
	}
	return a.engine.SyncParameters(ctx, ws.Path, rows), nil
}
