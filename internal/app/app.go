// Package app wires configuration, the Tag Manager client, the workbook and
// the sync engine into one method per console operation.
package app

import (
	"context"
	"fmt"

	"github.com/yairfalse/tagsync/internal/changelog"
	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/internal/syncer"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Options holds the collaborators of an App
type Options struct {
	Client    *gtm.Client
	Workbook  storage.Workbook
	Changes   changelog.Sink
	Logger    logger.Logger
	Workspace mapping.WorkspaceRef // pinned workspace; zero means use the sheet selection
	// StorageService labels storage failures
	StorageService tserrors.Service
}

// App runs console operations against one workbook
type App struct {
	api            *gtm.Client
	wb             storage.Workbook
	changes        changelog.Sink
	engine         *syncer.Engine
	log            logger.Logger
	pinned         mapping.WorkspaceRef
	storageService tserrors.Service
}

// New creates an App
func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	service := opts.StorageService
	if service == "" {
		service = tserrors.ServiceWorkbook
	}
	return &App{
		api:            opts.Client,
		wb:             opts.Workbook,
		changes:        opts.Changes,
		engine:         syncer.NewEngine(opts.Client, opts.Changes, log),
		log:            log,
		pinned:         opts.Workspace,
		storageService: service,
	}
}

// Workspace returns the pinned workspace, or else the first workspace row
// checked in the GTM Workspace sheet.
func (a *App) Workspace(ctx context.Context) (mapping.WorkspaceRef, error) {
	if a.pinned.Path != "" {
		ws := a.pinned
		if ws.Name == "" {
			ws.Name = ws.Path
		}
		return ws, nil
	}

	rows, err := a.read(ctx, storage.Workspaces)
	if err != nil {
		return mapping.WorkspaceRef{}, err
	}
	selected := mapping.SelectedRefs(rows)
	if len(selected) == 0 {
		return mapping.WorkspaceRef{}, tserrors.WorkspaceNotSelectedError()
	}
	if len(selected) > 1 {
		a.log.WithField("workspace", selected[0].Path).Warn("more than one workspace checked, using the first")
	}
	return selected[0], nil
}

func (a *App) read(ctx context.Context, r storage.Range) ([]types.Row, error) {
	rows, err := a.wb.Read(ctx, r)
	if err != nil {
		return nil, tserrors.StorageError(a.storageService, fmt.Sprintf("failed to read %s of %q", r.Name, r.Sheet), err)
	}
	return rows, nil
}

// replace clears r and writes rows into it
func (a *App) replace(ctx context.Context, r storage.Range, rows []types.Row) error {
	if err := storage.Replace(ctx, a.wb, r, rows); err != nil {
		return tserrors.StorageError(a.storageService, fmt.Sprintf("failed to write %s of %q", r.Name, r.Sheet), err)
	}
	a.log.WithFields(map[string]interface{}{
		"sheet": r.Sheet,
		"range": r.Name,
		"rows":  len(rows),
	}).Debug("range replaced")
	return nil
}

func (a *App) warn(listing *types.Listing, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	a.log.Warn(message)
	listing.Warn(message)
}
