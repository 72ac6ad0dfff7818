package mapping

import (
	"github.com/yairfalse/tagsync/pkg/types"
)

// VariableReferenceRows lists {{name}} for every user-defined variable
// followed by every enabled built-in variable.
func VariableReferenceRows(variables []types.Variable, builtIns []types.BuiltInVariable) []types.Row {
	rows := make([]types.Row, 0, len(variables)+len(builtIns))
	for _, variable := range variables {
		rows = append(rows, types.Row{VariableReference(variable.Name)})
	}
	for _, builtIn := range builtIns {
		rows = append(rows, types.Row{VariableReference(builtIn.Name)})
	}
	return rows
}

// EventSettingsVariableRows lists GA4 event settings variables by reference
func EventSettingsVariableRows(variables []types.Variable) []types.Row {
	var rows []types.Row
	for _, variable := range variables {
		if variable.Type == types.VariableTypeEventSettings {
			rows = append(rows, types.Row{VariableReference(variable.Name)})
		}
	}
	return rows
}

// TagNameRows lists tag names, used for setup and teardown dropdowns
func TagNameRows(tags []types.Tag) []types.Row {
	rows := make([]types.Row, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, types.Row{tag.Name})
	}
	return rows
}
