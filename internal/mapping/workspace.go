package mapping

import (
	"github.com/yairfalse/tagsync/pkg/types"
)

// WorkspaceRef names the workspace rows are read from and written for
type WorkspaceRef struct {
	Name string
	Path string
}

// AccountRows renders accounts as (name, path)
func AccountRows(accounts []types.Account) []types.Row {
	rows := make([]types.Row, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, types.Row{account.Name, account.Path})
	}
	return rows
}

// ContainerRows renders containers as (name, path)
func ContainerRows(containers []types.Container) []types.Row {
	rows := make([]types.Row, 0, len(containers))
	for _, container := range containers {
		rows = append(rows, types.Row{container.Name, container.Path})
	}
	return rows
}

// WorkspaceRows renders workspaces as (name, path)
func WorkspaceRows(workspaces []types.Workspace) []types.Row {
	rows := make([]types.Row, 0, len(workspaces))
	for _, ws := range workspaces {
		rows = append(rows, types.Row{ws.Name, ws.Path})
	}
	return rows
}

// SelectedRefs returns the (name, path) of every row whose third cell is
// checked.
func SelectedRefs(rows []types.Row) []WorkspaceRef {
	var refs []WorkspaceRef
	for _, row := range rows {
		if row.Flag(2) && row.Cell(1) != "" {
			refs = append(refs, WorkspaceRef{Name: row.Cell(0), Path: row.Cell(1)})
		}
	}
	return refs
}
