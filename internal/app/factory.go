package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/yairfalse/tagsync/internal/changelog"
	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/config"
)

// Factory builds an App from configuration
type Factory struct {
	checker *config.CredentialsChecker
}

func NewFactory() *Factory {
	return &Factory{checker: config.NewCredentialsChecker()}
}

// Create validates cfg, authenticates against Google and opens the workbook
func (f *Factory) Create(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		if cfg.UsesSheets() && cfg.Spreadsheet.ID == "" {
			return nil, tserrors.SpreadsheetNotConfiguredError()
		}
		return nil, tserrors.Configuration(err.Error())
	}

	opts, err := f.clientOptions(ctx, cfg)
	if err != nil {
		return nil, tserrors.GoogleAuthenticationError(err)
	}

	svc, err := gtm.NewTagManagerService(ctx, opts...)
	if err != nil {
		return nil, tserrors.Wrap(tserrors.ErrorTypeNetwork, tserrors.ServiceTagManager, "failed to create Tag Manager service", err)
	}

	wb, service, err := f.workbook(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	actor := f.actor(cfg)
	log = log.WithField("backend", cfg.Spreadsheet.Backend)
	log.WithField("actor", actor).Debug("console ready")

	return New(Options{
		Client:         gtm.NewClient(svc, gtm.FixedDelay(cfg.API.RequestDelay), log),
		Workbook:       wb,
		Changes:        changelog.NewRecorder(wb, actor, changelog.WithLogger(log)),
		Logger:         log,
		Workspace:      mapping.WorkspaceRef{Name: cfg.Workspace.Name, Path: cfg.Workspace.Path},
		StorageService: service,
	}), nil
}

// Scopes lists every OAuth scope the console needs
func Scopes() []string {
	return append(append([]string{}, gtm.Scopes...), storage.SheetsScope)
}

func (f *Factory) clientOptions(ctx context.Context, cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.Google.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.Google.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, Scopes()...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	}

	// Use Application Default Credentials
	creds, err := google.FindDefaultCredentials(ctx, Scopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

func (f *Factory) workbook(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (storage.Workbook, tserrors.Service, error) {
	if !cfg.UsesSheets() {
		wb, err := storage.NewLocalWorkbook(cfg.Spreadsheet.LocalDir)
		if err != nil {
			return nil, "", tserrors.StorageError(tserrors.ServiceWorkbook, "failed to open local workbook", err)
		}
		return wb, tserrors.ServiceWorkbook, nil
	}

	wb, err := storage.NewSheetsWorkbook(ctx, cfg.Spreadsheet.ID, opts...)
	if err != nil {
		return nil, "", tserrors.StorageError(tserrors.ServiceSheets, "failed to create Sheets service", err)
	}
	return wb, tserrors.ServiceSheets, nil
}

// actor names who made a change: the configured actor, else the service
// account email of the credentials in use
func (f *Factory) actor(cfg *config.Config) string {
	if cfg.Actor != "" {
		return cfg.Actor
	}
	return f.checker.Check(cfg).ClientEmail
}
