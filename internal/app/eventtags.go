package app

import (
	"context"

	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// ListEventTags writes the workspace's GA4 event tags into the Event Tag
// Settings sheet and refreshes the validation lists the sheet's dropdowns
// use. A tag whose triggers cannot be named is left out with a warning.
func (a *App) ListEventTags(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	tags := a.api.ListTags(ctx, ws.Path)
	variables := a.api.ListVariables(ctx, ws.Path)
	triggers := a.api.ListTriggers(ctx, ws.Path)

	if _, err := a.writeVariableReferences(ctx, ws, variables); err != nil {
		return nil, err
	}
	if err := a.replace(ctx, storage.ValidationEventSettings, mapping.EventSettingsVariableRows(variables)); err != nil {
		return nil, err
	}
	if err := a.replace(ctx, storage.ValidationTagNames, mapping.TagNameRows(tags)); err != nil {
		return nil, err
	}

	listing := &types.Listing{Operation: "event-tags list", Sheet: storage.SheetEventTags}
	ix := mapping.NewTriggerIndex(triggers)

	var rows []types.Row
	for _, tag := range tags {
		if !tag.IsGA4Event() {
			continue
		}
		row, err := mapping.EventTagRow(ws, tag, ix)
		if err != nil {
			a.warn(listing, "tag %q skipped: %v", tag.Name, err)
			continue
		}
		rows = append(rows, row)
	}

	if err := a.replace(ctx, storage.EventTags, rows); err != nil {
		return nil, err
	}
	listing.Rows = len(rows)
	return listing, nil
}

// ModifyEventTags applies the action flags of the Event Tag Settings sheet
func (a *App) ModifyEventTags(ctx context.Context) (*types.Report, error) {
	rows, err := a.read(ctx, storage.EventTags)
	if err != nil {
		return nil, err
	}
	return a.engine.SyncEventTags(ctx, rows), nil
}
