package app

import (
	"context"

	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Dictionary documents every tag of the workspace in the Tag Data
// Dictionary sheet
func (a *App) Dictionary(ctx context.Context) (*types.Listing, error) {
	ws, err := a.Workspace(ctx)
	if err != nil {
		return nil, err
	}

	tags := a.api.ListTags(ctx, ws.Path)
	triggers := a.api.ListTriggers(ctx, ws.Path)
	variables := a.api.ListVariables(ctx, ws.Path)

	listing := &types.Listing{Operation: "dictionary tags", Sheet: storage.SheetDataDictionary}
	ix := mapping.NewTriggerIndex(triggers)

	rows := make([]types.Row, 0, len(tags))
	for _, tag := range tags {
		row, err := mapping.DictionaryRow(tag, ix, variables)
		if err != nil {
			a.warn(listing, "tag %q skipped: %v", tag.Name, err)
			continue
		}
		rows = append(rows, row)
	}

	if err := a.replace(ctx, storage.DataDictionary, rows); err != nil {
		return nil, err
	}
	listing.Rows = len(rows)
	return listing, nil
}
