// Package usage reports where workspace variables are referenced and
// deletes the ones marked for removal.
package usage

import (
	"strconv"
	"strings"

	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/pkg/types"
)

// NameSeparator joins names inside one usage cell
const NameSeparator = ",\n"

// Variable Usage columns
const (
	ColLink = iota
	ColPath
	ColTagCount
	ColTagNames
	ColTriggerCount
	ColTriggerNames
	ColVariableCount
	ColVariableNames

	WriteWidth
)

// ReadWidth adds the delete checkbox
const ReadWidth = WriteWidth + 1

// Usage lists the resources referencing one variable
type Usage struct {
	Variable  types.Variable
	Tags      []string
	Triggers  []string
	Variables []string
}

// Unused reports whether nothing references the variable
func (u Usage) Unused() bool {
	return len(u.Tags) == 0 && len(u.Triggers) == 0 && len(u.Variables) == 0
}

// Row renders the usage for the Variable Usage sheet
func (u Usage) Row() types.Row {
	return types.Row{
		mapping.HyperlinkFormula(gtm.ContainerURL(u.Variable.Path), u.Variable.Name),
		u.Variable.Path,
		strconv.Itoa(len(u.Tags)),
		strings.Join(u.Tags, NameSeparator),
		strconv.Itoa(len(u.Triggers)),
		strings.Join(u.Triggers, NameSeparator),
		strconv.Itoa(len(u.Variables)),
		strings.Join(u.Variables, NameSeparator),
	}
}

// Analyze computes the usage of every variable, in variable order
func Analyze(variables []types.Variable, tags []types.Tag, triggers []types.Trigger) []Usage {
	usages := make([]Usage, 0, len(variables))
	for _, variable := range variables {
		m := NewMatcher(variable.Name)
		usage := Usage{Variable: variable}

		for _, tag := range tags {
			if m.InTag(tag) {
				usage.Tags = append(usage.Tags, tag.Name)
			}
		}
		for _, trigger := range triggers {
			if m.InTrigger(trigger) {
				usage.Triggers = append(usage.Triggers, trigger.Name)
			}
		}
		for _, other := range variables {
			if m.InVariable(other) {
				usage.Variables = append(usage.Variables, other.Name)
			}
		}

		usages = append(usages, usage)
	}
	return usages
}

// Rows renders usages for the sheet
func Rows(usages []Usage) []types.Row {
	rows := make([]types.Row, 0, len(usages))
	for _, usage := range usages {
		rows = append(rows, usage.Row())
	}
	return rows
}
