package usage

import (
	"context"

	"github.com/yairfalse/tagsync/internal/changelog"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/pkg/types"
)

// ActionDeleted is the changelog action of a removed variable
const ActionDeleted = "Deleted"

// EntityTypeVariable is the changelog entity type of variables
const EntityTypeVariable = "variable"

// Remover deletes a resource
type Remover interface {
	Remove(ctx context.Context, kind gtm.Kind, path string) gtm.Result[struct{}]
}

// DeleteFlagged removes every variable whose row has its delete box
// checked. Each attempt is written to the changelog and failures do not
// stop the run.
func DeleteFlagged(ctx context.Context, api Remover, changes changelog.Sink, log logger.Logger, rows []types.Row) *types.Report {
	if log == nil {
		log = logger.NewNop()
	}
	report := types.NewReport("usage delete")

	for i, row := range rows {
		if !row.FlagFromEnd(1) {
			continue
		}

		name := mapping.HyperlinkLabel(row.Cell(ColLink))
		path := row.Cell(ColPath)
		id := gtm.LastSegment(path)
		url := gtm.ContainerURL(path)
		outcome := types.Outcome{Row: i + 1, Entity: name, EntityID: id, Action: "delete", URL: url}

		if path == "" {
			outcome.Status, outcome.Message = types.OutcomeSkipped, "variable path is empty"
			log.WithField("variable", name).Warn(outcome.Message)
			report.Add(outcome)
			continue
		}

		action := ActionDeleted
		result := api.Remove(ctx, gtm.KindVariables, path)
		if result.OK() {
			outcome.Status = types.OutcomeApplied
			log.WithFields(map[string]interface{}{"variable": name, "variable_id": id}).Info("deleted variable")
		} else {
			action = result.Detail().Message
			outcome.Status, outcome.Message = types.OutcomeFailed, action
		}

		if err := changes.Record(ctx, types.ChangeRecord{
			EntityName: name,
			EntityType: EntityTypeVariable,
			EntityID:   id,
			Action:     action,
			URL:        url,
		}); err != nil {
			log.WithField("variable", name).Error("failed to record change", err)
		}
		report.Add(outcome)
	}

	return report.Finish()
}
