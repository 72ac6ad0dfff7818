package usage

import (
	"strings"

	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/pkg/types"
)

// freeTextKeys hold code where a reference may appear anywhere in the value
var freeTextKeys = map[string]bool{
	"html":       true,
	"javascript": true,
}

// Matcher finds references to one variable
type Matcher struct {
	reference string
}

// NewMatcher matches {{name}}
func NewMatcher(name string) Matcher {
	return Matcher{reference: mapping.VariableReference(name)}
}

// Match reports whether a single parameter node references the variable
func (m Matcher) Match(p types.Parameter) bool {
	if freeTextKeys[p.Key] {
		return strings.Contains(p.Value, m.reference)
	}
	return p.Value == m.reference
}

// InParameters searches parameter trees including every nested list and map
func (m Matcher) InParameters(params []types.Parameter) bool {
	return types.Walk(params, m.Match)
}

func (m Matcher) inOptional(params ...*types.Parameter) bool {
	for _, param := range params {
		if param != nil && m.InParameters([]types.Parameter{*param}) {
			return true
		}
	}
	return false
}

// InTag searches parameters, priority, monitoring metadata and consent types
func (m Matcher) InTag(tag types.Tag) bool {
	if m.InParameters(tag.Parameter) || m.inOptional(tag.Priority, tag.MonitoringMetadata) {
		return true
	}
	return tag.ConsentSettings != nil && m.inOptional(tag.ConsentSettings.ConsentType)
}

// InTrigger searches parameters, filter conditions and scalar fields
func (m Matcher) InTrigger(trigger types.Trigger) bool {
	return m.InParameters(trigger.Parameter) ||
		types.WalkConditions(trigger.Conditions(), m.Match) ||
		m.InParameters(trigger.ScalarFields())
}

// InVariable searches parameters and format value conversions
func (m Matcher) InVariable(variable types.Variable) bool {
	return m.InParameters(variable.Parameter) || m.InParameters(variable.FormatValue.Conversions())
}
