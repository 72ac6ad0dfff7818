package storage

import (
	"github.com/yairfalse/tagsync/pkg/types"
)

// Sheet names of the console workbook
const (
	SheetWorkspace      = "GTM Workspace"
	SheetParamSettings  = "Modify Parameter or User Property Settings"
	SheetValidation     = "Validation Settings"
	SheetEventTags      = "Event Tag Settings"
	SheetDataDictionary = "Tag Data Dictionary"
	SheetVariableUsage  = "Variable Usage"
	SheetChangelog      = "Changelog"
)

// Every range starts below a single header row.
var (
	Accounts = Range{
		Sheet: SheetWorkspace, Name: "accounts",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 3},
		Write: Shape{Row: 2, Column: 1, NumColumns: 2},
	}
	Containers = Range{
		Sheet: SheetWorkspace, Name: "containers",
		Read:  Shape{Row: 2, Column: 4, NumColumns: 3},
		Write: Shape{Row: 2, Column: 4, NumColumns: 2},
	}
	Workspaces = Range{
		Sheet: SheetWorkspace, Name: "workspaces",
		Read:  Shape{Row: 2, Column: 7, NumColumns: 3},
		Write: Shape{Row: 2, Column: 7, NumColumns: 2},
	}
	ParamSettings = Range{
		Sheet: SheetParamSettings, Name: "parameters",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 7},
		Write: Shape{Row: 2, Column: 1, NumColumns: 6},
	}
	ValidationVariables = Range{
		Sheet: SheetValidation, Name: "gtmVariables",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 1},
		Write: Shape{Row: 2, Column: 1, NumColumns: 1},
	}
	ValidationEventSettings = Range{
		Sheet: SheetValidation, Name: "eventSettingsVariables",
		Read:  Shape{Row: 2, Column: 3, NumColumns: 1},
		Write: Shape{Row: 2, Column: 3, NumColumns: 1},
	}
	ValidationTagNames = Range{
		Sheet: SheetValidation, Name: "tagNames",
		Read:  Shape{Row: 2, Column: 4, NumColumns: 1},
		Write: Shape{Row: 2, Column: 4, NumColumns: 1},
	}
	EventTags = Range{
		Sheet: SheetEventTags, Name: "eventTags",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 27},
		Write: Shape{Row: 2, Column: 1, NumColumns: 24},
	}
	DataDictionary = Range{
		Sheet: SheetDataDictionary, Name: "tags",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 7},
		Write: Shape{Row: 2, Column: 1, NumColumns: 7},
	}
	VariableUsage = Range{
		Sheet: SheetVariableUsage, Name: "variables",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 9},
		Write: Shape{Row: 2, Column: 1, NumColumns: 8},
	}
	Changelog = Range{
		Sheet: SheetChangelog, Name: "changelog",
		Read:  Shape{Row: 2, Column: 1, NumColumns: 7},
		Write: Shape{Row: 2, Column: 1, NumColumns: 7},
	}
)

// Headers are the first rows of a fresh sheet. The local workbook starts
// missing sheets with them so data and appends begin on row 2.
var Headers = map[string]types.Row{
	SheetWorkspace: {
		"Account Name", "Account Path", "Select",
		"Container Name", "Container Path", "Select",
		"Workspace Name", "Workspace Path", "Select",
	},
	SheetParamSettings: {"Tag Name", "Tag ID", "Event Name", "Type", "Name", "Value", "Action"},
	SheetValidation:    {"GTM Variables", "", "Event Settings Variables", "Tag Names"},
	SheetEventTags: {
		"Workspace Name", "Workspace Path", "Tag Name", "Tag ID", "Paused", "Event Name",
		"Send Ecommerce Data", "Ecommerce Data Source", "Measurement ID Override",
		"Event Settings Variable", "Firing Priority", "Schedule Start", "Schedule End",
		"Live Only", "Setup Tag", "Stop On Setup Failure", "Teardown Tag",
		"Stop Teardown On Failure", "Tag Firing Option", "Consent Status", "Consent Types",
		"Monitoring Metadata Tag Name Key", "Firing Triggers", "Blocking Triggers",
		"Create", "Update", "Delete",
	},
	SheetDataDictionary: {"Tag Name", "Tag ID", "Type", "Firing Triggers", "Blocking Triggers", "Variables", "Notes"},
	SheetVariableUsage: {
		"Variable Name", "Variable Path", "Tag Count", "Tags", "Trigger Count",
		"Triggers", "Variable Count", "Variables", "Delete",
	},
	SheetChangelog: {"Date", "Entity Name", "Entity Type", "Entity ID", "Action", "URL", "User"},
}
