package mapping

import (
	"strings"

	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Built-in triggers every container has but the API never lists
var WellKnownTriggers = []types.Trigger{
	{TriggerID: "2147479553", Name: "All Pages"},
	{TriggerID: "2147479572", Name: "Consent Initialization - All Pages"},
	{TriggerID: "2147479573", Name: "Initialization - All Pages"},
}

// TriggerIndex resolves trigger names to ids and back. When two triggers
// share a name the first one wins, and the well-known triggers always come
// first.
type TriggerIndex struct {
	idByName map[string]string
	nameByID map[string]string
}

// NewTriggerIndex indexes workspace triggers plus the well-known triggers
func NewTriggerIndex(triggers []types.Trigger) *TriggerIndex {
	ix := &TriggerIndex{
		idByName: make(map[string]string),
		nameByID: make(map[string]string),
	}
	for _, trigger := range WellKnownTriggers {
		ix.add(trigger)
	}
	for _, trigger := range triggers {
		ix.add(trigger)
	}
	return ix
}

func (ix *TriggerIndex) add(trigger types.Trigger) {
	if _, seen := ix.nameByID[trigger.TriggerID]; seen {
		return
	}
	ix.nameByID[trigger.TriggerID] = trigger.Name
	if _, taken := ix.idByName[trigger.Name]; !taken {
		ix.idByName[trigger.Name] = trigger.TriggerID
	}
}

// Len returns the number of indexed triggers
func (ix *TriggerIndex) Len() int {
	return len(ix.nameByID)
}

// ID resolves one trigger name
func (ix *TriggerIndex) ID(name string) (string, error) {
	id, ok := ix.idByName[strings.TrimSpace(name)]
	if !ok {
		return "", tserrors.NotFound("trigger", strings.TrimSpace(name))
	}
	return id, nil
}

// IDs resolves a comma separated list of trigger names. The first name that
// does not resolve fails the whole list.
func (ix *TriggerIndex) IDs(names string) ([]string, error) {
	var ids []string
	for _, name := range splitList(names) {
		id, err := ix.ID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Names resolves trigger ids to names
func (ix *TriggerIndex) Names(ids []string) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := ix.nameByID[strings.TrimSpace(id)]
		if !ok {
			return nil, tserrors.NotFound("trigger id", id)
		}
		names = append(names, name)
	}
	return names, nil
}

// JoinedNames resolves ids and joins the names with ", "
func (ix *TriggerIndex) JoinedNames(ids []string) (string, error) {
	names, err := ix.Names(ids)
	if err != nil {
		return "", err
	}
	return strings.Join(names, ", "), nil
}
