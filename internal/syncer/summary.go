package syncer

import (
	"strings"

	"github.com/yairfalse/tagsync/internal/mapping"
)

// Summary describes the changes of a batch for the changelog
func Summary(batch *TagBatch) string {
	var sb strings.Builder
	sb.WriteString("The following has been modified in this tag:")

	section := func(title string, changes []mapping.ParamChange) {
		if len(changes) == 0 {
			return
		}
		sb.WriteString("\n    - " + title + ":")
		for _, change := range changes {
			sb.WriteString("\n        - Name: " + change.Name + ", Value: " + change.Value)
		}
	}

	section("Parameters created", batch.creates(mapping.EntryParameter))
	section("User Properties created", batch.creates(mapping.EntryUserProperty))
	section("Parameters removed", batch.removes(mapping.EntryParameter))
	section("User Properties removed", batch.removes(mapping.EntryUserProperty))

	return sb.String()
}
