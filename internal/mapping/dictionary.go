package mapping

import (
	"regexp"
	"strings"

	"github.com/yairfalse/tagsync/pkg/types"
)

var referencePattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// DictionaryWidth is the width of a Tag Data Dictionary row
const DictionaryWidth = 7

// DictionaryRow documents one tag: link, id, type, trigger names, the
// user-defined variables it references and its notes.
func DictionaryRow(tag types.Tag, ix *TriggerIndex, variables []types.Variable) (types.Row, error) {
	firing, err := ix.JoinedNames(tag.FiringTriggerID)
	if err != nil {
		return nil, err
	}
	blocking, err := ix.JoinedNames(tag.BlockingTriggerID)
	if err != nil {
		return nil, err
	}

	return types.Row{
		HyperlinkFormula(tag.TagManagerURL, tag.Name),
		tag.TagID,
		tag.Type,
		firing,
		blocking,
		strings.Join(ReferencedVariables(tag.Parameter, variables), ", "),
		tag.Notes,
	}, nil
}

// ReferencedVariables returns the names of user-defined variables referenced
// anywhere in params, in first-seen order without duplicates.
func ReferencedVariables(params []types.Parameter, variables []types.Variable) []string {
	known := make(map[string]bool, len(variables))
	for _, variable := range variables {
		known[variable.Name] = true
	}

	var names []string
	seen := make(map[string]bool)
	types.Walk(params, func(p types.Parameter) bool {
		for _, match := range referencePattern.FindAllStringSubmatch(p.Value, -1) {
			name := match[1]
			if known[name] && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		return false
	})
	return names
}
