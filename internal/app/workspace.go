package app

import (
	"context"

	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// ListAccounts writes every accessible account into the GTM Workspace sheet
func (a *App) ListAccounts(ctx context.Context) (*types.Listing, error) {
	rows := mapping.AccountRows(a.api.ListAccounts(ctx))
	if err := a.replace(ctx, storage.Accounts, rows); err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "workspace accounts", Sheet: storage.SheetWorkspace, Rows: len(rows)}, nil
}

// ListContainers writes the containers of every checked account
func (a *App) ListContainers(ctx context.Context) (*types.Listing, error) {
	accounts, err := a.checked(ctx, storage.Accounts, "account")
	if err != nil {
		return nil, err
	}

	var rows []types.Row
	for _, account := range accounts {
		rows = append(rows, mapping.ContainerRows(a.api.ListContainers(ctx, account.Path))...)
	}
	if err := a.replace(ctx, storage.Containers, rows); err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "workspace containers", Sheet: storage.SheetWorkspace, Rows: len(rows)}, nil
}

// ListWorkspaces writes the workspaces of every checked container
func (a *App) ListWorkspaces(ctx context.Context) (*types.Listing, error) {
	containers, err := a.checked(ctx, storage.Containers, "container")
	if err != nil {
		return nil, err
	}

	var rows []types.Row
	for _, container := range containers {
		rows = append(rows, mapping.WorkspaceRows(a.api.ListWorkspaces(ctx, container.Path))...)
	}
	if err := a.replace(ctx, storage.Workspaces, rows); err != nil {
		return nil, err
	}
	return &types.Listing{Operation: "workspace workspaces", Sheet: storage.SheetWorkspace, Rows: len(rows)}, nil
}

func (a *App) checked(ctx context.Context, r storage.Range, what string) ([]mapping.WorkspaceRef, error) {
	rows, err := a.read(ctx, r)
	if err != nil {
		return nil, err
	}
	refs := mapping.SelectedRefs(rows)
	if len(refs) == 0 {
		return nil, tserrors.Validation("no " + what + " checked in the \"" + storage.SheetWorkspace + "\" sheet").
			WithSolutions("tick the third column of at least one " + what + " row")
	}
	return refs, nil
}
