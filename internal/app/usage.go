package app

import (
	"context"

	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/internal/usage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// ListUsage writes one row per variable with the tags, triggers and
// variables that reference it
func (a *App) ListUsage(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	variables := a.api.ListVariables(ctx, ws.Path)
	tags := a.api.ListTags(ctx, ws.Path)
	triggers := a.api.ListTriggers(ctx, ws.Path)

	usages := usage.Analyze(variables, tags, triggers)
	rows := usage.Rows(usages)
	if err := a.replace(ctx, storage.VariableUsage, rows); err != nil {
		return nil, err
	}

	listing := &types.Listing{Operation: "usage list", Sheet: storage.SheetVariableUsage, Rows: len(rows)}
	unused := 0
	for _, u := range usages {
		if u.Unused() {
			unused++
		}
	}
	a.log.WithFields(map[string]interface{}{
		"variables": len(usages),
		"unused":    unused,
	}).Info("variable usage written")
	return listing, nil
}

// DeleteUsage removes every variable checked for deletion in the Variable
// Usage sheet
func (a *App) DeleteUsage(ctx context.Context) (*types.Report, error) {
	rows, err := a.read(ctx, storage.VariableUsage)
	if err != nil {
		return nil, err
	}
	return usage.DeleteFlagged(ctx, a.api, a.changes, a.log, rows), nil
}
