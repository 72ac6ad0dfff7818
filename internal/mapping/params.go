package mapping

import (
	"github.com/yairfalse/tagsync/pkg/types"
)

// List parameter keys of a GA4 event tag
const (
	KeyEventParameters = "eventSettingsTable"
	KeyUserProperties  = "userProperties"
)

// Entry types of the parameter settings sheet
const (
	EntryParameter    = "parameter"
	EntryUserProperty = "user_property"
)

// Actions of the parameter settings sheet
const (
	ActionCreate = "Create"
	ActionDelete = "Delete"
)

// Modify Parameter or User Property Settings columns
const (
	ParamColTagName = iota
	ParamColTagID
	ParamColEventName
	ParamColType
	ParamColName
	ParamColValue
	ParamColAction
)

const (
	ParamWriteWidth = ParamColAction
	ParamReadWidth  = ParamColAction + 1
)

// ListKey returns the tag parameter list holding entries of entryType
func ListKey(entryType string) (string, bool) {
	switch entryType {
	case EntryParameter:
		return KeyEventParameters, true
	case EntryUserProperty:
		return KeyUserProperties, true
	}
	return "", false
}

func entryType(listKey string) (string, bool) {
	switch listKey {
	case KeyEventParameters:
		return EntryParameter, true
	case KeyUserProperties:
		return EntryUserProperty, true
	}
	return "", false
}

// ParamRows lists every event parameter and user property of the GA4 event
// tags, one row per entry.
func ParamRows(tags []types.Tag) []types.Row {
	var rows []types.Row
	for _, tag := range tags {
		if !tag.IsGA4Event() {
			continue
		}
		eventName := tag.ParamValue(KeyEventName)
		for _, param := range tag.Parameter {
			if param.Shape() != types.ShapeList {
				continue
			}
			kind, ok := entryType(param.Key)
			if !ok {
				continue
			}
			for _, entry := range param.List {
				name, value := entry.NameValue()
				rows = append(rows, types.Row{tag.Name, tag.TagID, eventName, kind, name, value})
			}
		}
	}
	return rows
}

// TagSeedRows lists the GA4 event tags with blank entry columns, ready for
// the user to fill in.
func TagSeedRows(tags []types.Tag) []types.Row {
	var rows []types.Row
	for _, tag := range tags {
		if !tag.IsGA4Event() {
			continue
		}
		rows = append(rows, types.Row{tag.Name, tag.TagID, tag.ParamValue(KeyEventName), "", "", ""})
	}
	return rows
}

// ParamChange is one desired parameter or user property mutation
type ParamChange struct {
	TagName string
	TagID   string
	Type    string
	Name    string
	Value   string
	Action  string
}

// ParamChangeFromRow reads a settings row
func ParamChangeFromRow(row types.Row) ParamChange {
	return ParamChange{
		TagName: row.Cell(ParamColTagName),
		TagID:   row.Cell(ParamColTagID),
		Type:    row.Cell(ParamColType),
		Name:    row.Cell(ParamColName),
		Value:   row.Cell(ParamColValue),
		Action:  row.Cell(ParamColAction),
	}
}

// Entry returns the {name, value} map the change describes
func (c ParamChange) Entry() types.Parameter {
	return types.NameValueMap(c.Name, c.Value)
}
