package syncer

import (
	"context"

	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Change record actions for event tags
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// workspaceState holds the listings of one workspace, fetched on first use
// during a run.
type workspaceState struct {
	index *mapping.TriggerIndex
	tags  map[string]types.Tag
}

type snapshots struct {
	api    TagAPI
	states map[string]*workspaceState
}

func (s *snapshots) state(path string) *workspaceState {
	if s.states == nil {
		s.states = make(map[string]*workspaceState)
	}
	if s.states[path] == nil {
		s.states[path] = &workspaceState{}
	}
	return s.states[path]
}

func (s *snapshots) triggers(ctx context.Context, path string) *mapping.TriggerIndex {
	state := s.state(path)
	if state.index == nil {
		state.index = mapping.NewTriggerIndex(s.api.ListTriggers(ctx, path))
	}
	return state.index
}

func (s *snapshots) tag(ctx context.Context, path, id string) (types.Tag, bool) {
	state := s.state(path)
	if state.tags == nil {
		state.tags = make(map[string]types.Tag)
		for _, tag := range s.api.ListTags(ctx, path) {
			state.tags[tag.TagID] = tag
		}
	}
	tag, ok := state.tags[id]
	return tag, ok
}

type eventTagAction int

const (
	noAction eventTagAction = iota
	createAction
	updateAction
	deleteAction
	conflictingActions
)

func (a eventTagAction) String() string {
	switch a {
	case createAction:
		return "create"
	case updateAction:
		return "update"
	case deleteAction:
		return "delete"
	}
	return ""
}

func actionOf(row types.Row) eventTagAction {
	create, update, remove := mapping.EventTagActions(row)
	set := 0
	action := noAction
	for _, candidate := range []struct {
		on     bool
		action eventTagAction
	}{{create, createAction}, {update, updateAction}, {remove, deleteAction}} {
		if candidate.on {
			set++
			action = candidate.action
		}
	}
	if set > 1 {
		return conflictingActions
	}
	return action
}

// SyncEventTags creates, updates or deletes one GA4 event tag per row whose
// single action checkbox is ticked. Rows with no box ticked are ignored.
func (e *Engine) SyncEventTags(ctx context.Context, rows []types.Row) *types.Report {
	report := types.NewReport("event-tags modify")
	snaps := &snapshots{api: e.api}

	for i, row := range rows {
		number := i + 1
		name := row.Cell(mapping.ColTagName)
		path := row.Cell(mapping.ColWorkspacePath)
		id := row.Cell(mapping.ColTagID)

		action := actionOf(row)
		switch {
		case action == noAction:
			continue
		case action == conflictingActions:
			e.skip(report, number, name, "more than one action is checked")
			continue
		case path == "":
			e.skip(report, number, name, "workspace path is empty")
			continue
		case action == createAction && name == "":
			e.skip(report, number, name, "tag name is required to create a tag")
			continue
		case action != createAction && id == "":
			e.skip(report, number, name, "tag id is required to %s a tag", action)
			continue
		}

		var outcome types.Outcome
		switch action {
		case createAction:
			outcome = e.createEventTag(ctx, snaps, row, path)
		case updateAction:
			outcome = e.updateEventTag(ctx, snaps, row, path, id)
		case deleteAction:
			outcome = e.deleteEventTag(ctx, row, path, id)
		}
		outcome.Row = number
		outcome.Action = action.String()
		report.Add(outcome)
	}

	return report.Finish()
}

func (e *Engine) createEventTag(ctx context.Context, snaps *snapshots, row types.Row, path string) types.Outcome {
	name := row.Cell(mapping.ColTagName)

	tag, err := mapping.EventTagFromRow(row, snaps.triggers(ctx, path), nil)
	if err != nil {
		return e.failRow(ctx, name, "", err.Error())
	}

	result := e.api.CreateTag(ctx, path, tag)
	if !result.OK() {
		return e.failRow(ctx, name, "", result.Detail().Message)
	}

	created := result.Value()
	e.record(ctx, types.ChangeRecord{
		EntityName: created.Name,
		EntityType: created.Type,
		EntityID:   created.TagID,
		Action:     ActionCreated,
		URL:        created.TagManagerURL,
	})
	e.log.WithFields(map[string]interface{}{"tag": created.Name, "tag_id": created.TagID}).Info("created event tag")
	return types.Outcome{Entity: created.Name, EntityID: created.TagID, Status: types.OutcomeApplied, URL: created.TagManagerURL}
}

func (e *Engine) updateEventTag(ctx context.Context, snaps *snapshots, row types.Row, path, id string) types.Outcome {
	name := row.Cell(mapping.ColTagName)

	current, ok := snaps.tag(ctx, path, id)
	if !ok {
		return e.failRow(ctx, name, id, tserrors.NotFound("tag", id).Error())
	}

	tag, err := mapping.EventTagFromRow(row, snaps.triggers(ctx, path), &current)
	if err != nil {
		return e.failRow(ctx, name, id, err.Error())
	}

	result := e.api.UpdateTag(ctx, gtm.ChildPath(path, gtm.KindTags, id), tag)
	if !result.OK() {
		return e.failRow(ctx, name, id, result.Detail().Message)
	}

	updated := result.Value()
	e.record(ctx, types.ChangeRecord{
		EntityName: updated.Name,
		EntityType: updated.Type,
		EntityID:   updated.TagID,
		Action:     ActionUpdated,
		URL:        updated.TagManagerURL,
	})
	e.log.WithFields(map[string]interface{}{"tag": updated.Name, "tag_id": updated.TagID}).Info("updated event tag")
	return types.Outcome{Entity: updated.Name, EntityID: updated.TagID, Status: types.OutcomeApplied, URL: updated.TagManagerURL}
}

func (e *Engine) deleteEventTag(ctx context.Context, row types.Row, path, id string) types.Outcome {
	name := row.Cell(mapping.ColTagName)

	result := e.api.Remove(ctx, gtm.KindTags, gtm.ChildPath(path, gtm.KindTags, id))
	if !result.OK() {
		return e.failRow(ctx, name, id, result.Detail().Message)
	}

	e.record(ctx, types.ChangeRecord{
		EntityName: name,
		EntityType: types.TagTypeGA4Event,
		EntityID:   id,
		Action:     ActionRemoved,
	})
	e.log.WithFields(map[string]interface{}{"tag": name, "tag_id": id}).Info("removed event tag")
	return types.Outcome{Entity: name, EntityID: id, Status: types.OutcomeApplied}
}

// failRow logs a failed row mutation. The changelog entry carries only the
// row's tag name and the error text.
func (e *Engine) failRow(ctx context.Context, name, id, message string) types.Outcome {
	e.record(ctx, types.ChangeRecord{EntityName: name, Action: message})
	e.log.WithFields(map[string]interface{}{"tag": name, "tag_id": id}).Warn(message)
	return types.Outcome{Entity: name, EntityID: id, Status: types.OutcomeFailed, Message: message}
}
