package syncer

import (
	"context"
	"fmt"

	"github.com/yairfalse/tagsync/internal/changelog"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/pkg/types"
)

// TagAPI is the subset of the Tag Manager client the engine drives
type TagAPI interface {
	ListTags(ctx context.Context, workspacePath string) []types.Tag
	ListTriggers(ctx context.Context, workspacePath string) []types.Trigger
	GetTag(ctx context.Context, path string) gtm.Result[types.Tag]
	CreateTag(ctx context.Context, workspacePath string, tag types.Tag) gtm.Result[types.Tag]
	UpdateTag(ctx context.Context, path string, tag types.Tag) gtm.Result[types.Tag]
	Remove(ctx context.Context, kind gtm.Kind, path string) gtm.Result[struct{}]
}

// Engine applies spreadsheet rows to a workspace. Every row is processed;
// a failure affects only its own row and is written to the changelog.
type Engine struct {
	api     TagAPI
	changes changelog.Sink
	log     logger.Logger
}

// NewEngine creates an engine
func NewEngine(api TagAPI, changes changelog.Sink, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{api: api, changes: changes, log: log}
}

func (e *Engine) record(ctx context.Context, record types.ChangeRecord) {
	if err := e.changes.Record(ctx, record); err != nil {
		e.log.WithField("entity", record.EntityName).Error("failed to record change", err)
	}
}

func (e *Engine) skip(report *types.Report, row int, entity, format string, args ...interface{}) {
	message := fmt.Sprintf("row %d: ", row) + fmt.Sprintf(format, args...)
	e.log.Warn(message)
	report.Add(types.Outcome{
		Row:     row,
		Entity:  entity,
		Status:  types.OutcomeSkipped,
		Message: message,
	})
}
