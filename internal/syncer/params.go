package syncer

import (
	"context"
	"fmt"

	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/pkg/types"
)

// entryTypes fixes the order entries are applied and summarized in
var entryTypes = []string{mapping.EntryParameter, mapping.EntryUserProperty}

// TagBatch holds every requested change for one tag in input order
type TagBatch struct {
	TagID   string
	TagName string
	Creates []mapping.ParamChange
	Removes []mapping.ParamChange
}

func (b *TagBatch) creates(entryType string) []mapping.ParamChange {
	return filterType(b.Creates, entryType)
}

func (b *TagBatch) removes(entryType string) []mapping.ParamChange {
	return filterType(b.Removes, entryType)
}

func filterType(changes []mapping.ParamChange, entryType string) []mapping.ParamChange {
	var out []mapping.ParamChange
	for _, change := range changes {
		if change.Type == entryType {
			out = append(out, change)
		}
	}
	return out
}

// GroupParamChanges groups rows by tag id in order of first appearance.
// Rows without a Create or Delete action are ignored; rows with an action
// but no usable tag id or type are reported as skipped.
func (e *Engine) GroupParamChanges(rows []types.Row, report *types.Report) []*TagBatch {
	var batches []*TagBatch
	byID := make(map[string]*TagBatch)

	for i, row := range rows {
		change := mapping.ParamChangeFromRow(row)
		if change.Action != mapping.ActionCreate && change.Action != mapping.ActionDelete {
			continue
		}
		if change.TagID == "" {
			e.skip(report, i+1, change.TagName, "tag id is empty")
			continue
		}
		if _, ok := mapping.ListKey(change.Type); !ok {
			e.skip(report, i+1, change.TagName, "unknown type %q", change.Type)
			continue
		}

		batch := byID[change.TagID]
		if batch == nil {
			batch = &TagBatch{TagID: change.TagID, TagName: change.TagName}
			byID[change.TagID] = batch
			batches = append(batches, batch)
		}
		if change.Action == mapping.ActionCreate {
			batch.Creates = append(batch.Creates, change)
		} else {
			batch.Removes = append(batch.Removes, change)
		}
	}

	return batches
}

// SyncParameters applies parameter and user property changes with exactly
// one update call per affected tag.
func (e *Engine) SyncParameters(ctx context.Context, workspacePath string, rows []types.Row) *types.Report {
	report := types.NewReport("params modify")

	for _, batch := range e.GroupParamChanges(rows, report) {
		report.Add(e.applyBatch(ctx, workspacePath, batch))
	}

	return report.Finish()
}

func (e *Engine) applyBatch(ctx context.Context, workspacePath string, batch *TagBatch) types.Outcome {
	path := gtm.ChildPath(workspacePath, gtm.KindTags, batch.TagID)
	outcome := types.Outcome{Entity: batch.TagName, EntityID: batch.TagID, Action: "update"}

	fetched := e.api.GetTag(ctx, path)
	if !fetched.OK() {
		message := fetched.Detail().Message
		e.record(ctx, types.ChangeRecord{EntityName: batch.TagName, EntityID: batch.TagID, Action: message})
		e.log.WithField("tag_id", batch.TagID).Warn(message)
		outcome.Status, outcome.Message = types.OutcomeFailed, message
		return outcome
	}

	tag := fetched.Value()
	outcome.Entity = tag.Name
	if !tag.IsGA4Event() {
		message := fmt.Sprintf("tag %s is %q, not a GA4 event tag", batch.TagID, tag.Type)
		e.log.WithField("tag_id", batch.TagID).Warn(message)
		outcome.Status, outcome.Message = types.OutcomeSkipped, message
		return outcome
	}

	tag.Parameter = ApplyBatch(tag.Parameter, batch)

	result := e.api.UpdateTag(ctx, path, tag)
	if !result.OK() {
		message := result.Detail().Message
		e.record(ctx, types.ChangeRecord{
			EntityName: tag.Name,
			EntityType: tag.Type,
			EntityID:   tag.TagID,
			Action:     message,
			URL:        tag.TagManagerURL,
		})
		e.log.WithField("tag_id", batch.TagID).Warn(message)
		outcome.Status, outcome.Message, outcome.URL = types.OutcomeFailed, message, tag.TagManagerURL
		return outcome
	}

	updated := result.Value()
	e.record(ctx, types.ChangeRecord{
		EntityName: updated.Name,
		EntityType: updated.Type,
		EntityID:   updated.TagID,
		Action:     Summary(batch),
		URL:        updated.TagManagerURL,
	})
	e.log.WithFields(map[string]interface{}{
		"tag_id":  updated.TagID,
		"creates": len(batch.Creates),
		"removes": len(batch.Removes),
	}).Info("updated tag parameters")

	outcome.Status, outcome.URL = types.OutcomeApplied, updated.TagManagerURL
	return outcome
}

// ApplyBatch edits the eventSettingsTable and userProperties lists of a
// tag's parameters. Removes run before creates. A list that does not exist
// yet is added only when it receives creates.
func ApplyBatch(params []types.Parameter, batch *TagBatch) []types.Parameter {
	out := append([]types.Parameter(nil), params...)

	for _, entryType := range entryTypes {
		key, _ := mapping.ListKey(entryType)
		creates := batch.creates(entryType)
		removes := batch.removes(entryType)
		if len(creates) == 0 && len(removes) == 0 {
			continue
		}

		index := -1
		for i, param := range out {
			if param.Key == key {
				index = i
				break
			}
		}

		if index < 0 {
			if len(creates) == 0 {
				continue
			}
			out = append(out, types.Parameter{Type: types.ParameterList, Key: key, List: entries(creates)})
			continue
		}

		// an empty list may come back untyped
		list := RemoveMatches(out[index].List, removes)
		out[index].Type = types.ParameterList
		out[index].List = append(list, entries(creates)...)
	}

	return out
}

// RemoveMatches removes, for each request, the first remaining entry whose
// name and value both match exactly. Unmatched requests change nothing.
func RemoveMatches(list []types.Parameter, removes []mapping.ParamChange) []types.Parameter {
	out := append([]types.Parameter(nil), list...)
	for _, remove := range removes {
		for i, entry := range out {
			name, value := entry.NameValue()
			if name == remove.Name && value == remove.Value {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

func entries(changes []mapping.ParamChange) []types.Parameter {
	out := make([]types.Parameter, 0, len(changes))
	for _, change := range changes {
		out = append(out, change.Entry())
	}
	return out
}
