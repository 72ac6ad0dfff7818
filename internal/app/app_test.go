package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tagsync/internal/changelog"
	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/gtm/gtmtest"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/internal/syncer"
	"github.com/yairfalse/tagsync/internal/usage"
	"github.com/yairfalse/tagsync/pkg/types"
)

const (
	accountPath   = "accounts/1"
	containerPath = "accounts/1/containers/2"
	workspacePath = "accounts/1/containers/2/workspaces/3"
)

type fixture struct {
	svc     *gtmtest.Service
	wb      *storage.LocalWorkbook
	changes *changelog.Memory
	app     *App
}

func newFixture(t *testing.T, pinned mapping.WorkspaceRef) *fixture {
	t.Helper()
	wb, err := storage.NewLocalWorkbook(t.TempDir())
	require.NoError(t, err)

	svc := gtmtest.New()
	changes := &changelog.Memory{}
	return &fixture{
		svc:     svc,
		wb:      wb,
		changes: changes,
		app: New(Options{
			Client:    gtm.NewClient(svc, nil, nil),
			Workbook:  wb,
			Changes:   changes,
			Workspace: pinned,
		}),
	}
}

func pinnedWorkspace() mapping.WorkspaceRef {
	return mapping.WorkspaceRef{Name: "Default Workspace", Path: workspacePath}
}

func (f *fixture) sheet(t *testing.T, name string) []types.Row {
	t.Helper()
	rows, err := f.wb.Sheet(name)
	require.NoError(t, err)
	return rows
}

func (f *fixture) read(t *testing.T, r storage.Range) []types.Row {
	t.Helper()
	rows, err := f.wb.Read(context.Background(), r)
	require.NoError(t, err)
	return rows
}

func (f *fixture) addTag(tag types.Tag) types.Tag {
	tag.Path = gtm.ChildPath(workspacePath, gtm.KindTags, tag.TagID)
	tag.TagManagerURL = gtm.ContainerURL(tag.Path)
	f.svc.Add(gtm.KindTags, workspacePath, tag)
	return tag
}

func (f *fixture) addVariable(id, name, kind string, params ...types.Parameter) types.Variable {
	variable := types.Variable{
		VariableID: id,
		Name:       name,
		Type:       kind,
		Path:       gtm.ChildPath(workspacePath, gtm.KindVariables, id),
		Parameter:  params,
	}
	f.svc.Add(gtm.KindVariables, workspacePath, variable)
	return variable
}

func header(width int) types.Row {
	row := types.NewRow(width)
	row[0] = "header"
	return row
}

func TestWorkspace_Pinned(t *testing.T) {
	f := newFixture(t, mapping.WorkspaceRef{Path: workspacePath})

	ws, err := f.app.Workspace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workspacePath, ws.Path)
	assert.Equal(t, workspacePath, ws.Name, "name falls back to the path")
	assert.Empty(t, f.svc.Calls())
}

func TestWorkspace_CheckedRow(t *testing.T) {
	f := newFixture(t, mapping.WorkspaceRef{})
	require.NoError(t, f.wb.SetSheet(storage.SheetWorkspace, []types.Row{
		header(9),
		{"Acme", accountPath, "", "www", containerPath, "", "Draft", "accounts/1/containers/2/workspaces/9", ""},
		{"", "", "", "", "", "", "Default Workspace", workspacePath, "TRUE"},
	}))

	ws, err := f.app.Workspace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mapping.WorkspaceRef{Name: "Default Workspace", Path: workspacePath}, ws)
}

func TestWorkspace_NoneSelected(t *testing.T) {
	f := newFixture(t, mapping.WorkspaceRef{})

	_, err := f.app.Workspace(context.Background())
	require.Error(t, err)
	assert.True(t, tserrors.Is(err, tserrors.ErrorTypeConfiguration))

	_, err = f.app.ListEventTags(context.Background())
	assert.True(t, tserrors.Is(err, tserrors.ErrorTypeConfiguration))
	assert.Empty(t, f.svc.Calls(), "nothing is listed without a workspace")
}

func TestListAccountsContainersWorkspaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mapping.WorkspaceRef{})
	f.svc.Add(gtm.KindAccounts, "", types.Account{AccountID: "1", Name: "Acme", Path: accountPath})
	f.svc.Add(gtm.KindContainers, accountPath, types.Container{ContainerID: "2", Name: "www", Path: containerPath})
	f.svc.Add(gtm.KindWorkspaces, containerPath, types.Workspace{WorkspaceID: "3", Name: "Default Workspace", Path: workspacePath})

	listing, err := f.app.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Rows)
	assert.Equal(t, []types.Row{{"Acme", accountPath, ""}}, f.read(t, storage.Accounts))

	_, err = f.app.ListContainers(ctx)
	assert.True(t, tserrors.Is(err, tserrors.ErrorTypeValidation), "no account is checked yet")

	// tick the account
	grid := f.sheet(t, storage.SheetWorkspace)
	grid[1] = types.Row{"Acme", accountPath, "true"}
	require.NoError(t, f.wb.SetSheet(storage.SheetWorkspace, grid))

	listing, err = f.app.ListContainers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Rows)
	assert.Equal(t, []types.Row{{"www", containerPath, ""}}, f.read(t, storage.Containers))

	grid = f.sheet(t, storage.SheetWorkspace)
	grid[1] = types.Row{"Acme", accountPath, "true", "www", containerPath, "true"}
	require.NoError(t, f.wb.SetSheet(storage.SheetWorkspace, grid))

	listing, err = f.app.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Rows)
	assert.Equal(t, []types.Row{{"Default Workspace", workspacePath, ""}}, f.read(t, storage.Workspaces))
	assert.Equal(t, []types.Row{{"Acme", accountPath, "true"}}, f.read(t, storage.Accounts), "neighbouring ranges are kept")
}

func TestListEventTags(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	f.addTag(types.Tag{
		TagID:           "5",
		Name:            "purchase_event",
		Type:            types.TagTypeGA4Event,
		FiringTriggerID: []string{"2147479553"},
		Parameter:       []types.Parameter{types.Template("eventName", "purchase")},
	})
	f.addTag(types.Tag{TagID: "6", Name: "Custom HTML", Type: "html"})
	f.addTag(types.Tag{
		TagID:           "7",
		Name:            "orphan_event",
		Type:            types.TagTypeGA4Event,
		FiringTriggerID: []string{"999"},
	})
	f.addVariable("10", "Page Path", "v")
	f.addVariable("11", "GA4 Settings", types.VariableTypeEventSettings)
	f.svc.Add(gtm.KindBuiltInVariables, workspacePath, types.BuiltInVariable{Name: "Page URL", Type: "pageUrl"})

	listing, err := f.app.ListEventTags(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, listing.Rows)
	require.Len(t, listing.Warnings, 1)
	assert.Contains(t, listing.Warnings[0], "orphan_event")

	rows := f.read(t, storage.EventTags)
	require.Len(t, rows, 1)
	assert.Equal(t, "Default Workspace", rows[0][mapping.ColWorkspaceName])
	assert.Equal(t, "purchase_event", rows[0][mapping.ColTagName])
	assert.Equal(t, "purchase", rows[0][mapping.ColEventName])
	assert.Equal(t, "All Pages", rows[0][mapping.ColFiringTriggers])

	assert.Equal(t, []types.Row{{"{{Page Path}}"}, {"{{GA4 Settings}}"}, {"{{Page URL}}"}}, f.read(t, storage.ValidationVariables))
	assert.Equal(t, []types.Row{{"{{GA4 Settings}}"}}, f.read(t, storage.ValidationEventSettings))
	assert.Equal(t, []types.Row{{"purchase_event"}, {"Custom HTML"}, {"orphan_event"}}, f.read(t, storage.ValidationTagNames))
}

func TestListEventTags_ClearsPreviousRows(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	stale := types.NewRow(mapping.EventTagReadWidth)
	stale[0] = "old"
	require.NoError(t, f.wb.SetSheet(storage.SheetEventTags, []types.Row{header(27), stale, stale}))

	listing, err := f.app.ListEventTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Rows)
	assert.Empty(t, f.read(t, storage.EventTags))
}

func TestModifyEventTags_Create(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	row := types.NewRow(mapping.EventTagReadWidth)
	row[mapping.ColWorkspaceName] = "Default Workspace"
	row[mapping.ColWorkspacePath] = workspacePath
	row[mapping.ColTagName] = "add_to_cart_event"
	row[mapping.ColEventName] = "add_to_cart"
	row[mapping.ColFiringTriggers] = "All Pages"
	row[mapping.EventTagWriteWidth] = "true"
	require.NoError(t, f.wb.SetSheet(storage.SheetEventTags, []types.Row{header(27), row}))

	report, err := f.app.ModifyEventTags(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.ReportCounts{Applied: 1}, report.Counts())
	creates := f.svc.CallsTo("create")
	require.Len(t, creates, 1)
	assert.Equal(t, workspacePath, creates[0].Path)

	var sent types.Tag
	gtmtest.Decode(creates[0].Payload, &sent)
	assert.Equal(t, []string{"2147479553"}, sent.FiringTriggerID)

	require.Len(t, f.changes.Records, 1)
	assert.Equal(t, syncer.ActionCreated, f.changes.Records[0].Action)
	assert.Equal(t, "add_to_cart_event", f.changes.Records[0].EntityName)
}

func TestListParamsAndTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, pinnedWorkspace())
	f.addTag(types.Tag{
		TagID: "5",
		Name:  "purchase_event",
		Type:  types.TagTypeGA4Event,
		Parameter: []types.Parameter{
			types.Template("eventName", "purchase"),
			{Type: types.ParameterList, Key: mapping.KeyEventParameters, List: []types.Parameter{types.NameValueMap("currency", "USD")}},
			{Type: types.ParameterList, Key: mapping.KeyUserProperties, List: []types.Parameter{types.NameValueMap("tier", "gold")}},
		},
	})

	listing, err := f.app.ListParams(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Rows)
	assert.Equal(t, []types.Row{
		{"purchase_event", "5", "purchase", mapping.EntryParameter, "currency", "USD", ""},
		{"purchase_event", "5", "purchase", mapping.EntryUserProperty, "tier", "gold", ""},
	}, f.read(t, storage.ParamSettings))

	listing, err = f.app.ListParamTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Rows)
	assert.Equal(t, []types.Row{{"purchase_event", "5", "purchase", "", "", "", ""}}, f.read(t, storage.ParamSettings))
}

func TestModifyParams_OneUpdatePerTag(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	tag := f.addTag(types.Tag{
		TagID: "5",
		Name:  "purchase_event",
		Type:  types.TagTypeGA4Event,
		Parameter: []types.Parameter{
			types.Template("eventName", "purchase"),
			{Type: types.ParameterList, Key: mapping.KeyEventParameters, List: []types.Parameter{types.NameValueMap("currency", "USD")}},
		},
	})
	require.NoError(t, f.wb.SetSheet(storage.SheetParamSettings, []types.Row{
		header(7),
		{"purchase_event", "5", "purchase", mapping.EntryParameter, "discount", "10", mapping.ActionCreate},
		{"purchase_event", "5", "purchase", mapping.EntryParameter, "currency", "USD", mapping.ActionDelete},
	}))

	report, err := f.app.ModifyParams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.ReportCounts{Applied: 1}, report.Counts())

	updates := f.svc.CallsTo("update")
	require.Len(t, updates, 1)
	assert.Equal(t, tag.Path, updates[0].Path)

	var sent types.Tag
	gtmtest.Decode(updates[0].Payload, &sent)
	list, ok := sent.Param(mapping.KeyEventParameters)
	require.True(t, ok)
	require.Len(t, list.List, 1)
	name, value := list.List[0].NameValue()
	assert.Equal(t, "discount", name)
	assert.Equal(t, "10", value)

	require.Len(t, f.changes.Records, 1)
	assert.Contains(t, f.changes.Records[0].Action, "Parameters created")
}

func TestWriteValidation(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	f.addVariable("10", "Page Path", "v")
	f.svc.Add(gtm.KindBuiltInVariables, workspacePath, types.BuiltInVariable{Name: "Event", Type: "event"})

	listing, err := f.app.WriteValidation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Rows)
	assert.Equal(t, []types.Row{{"{{Page Path}}"}, {"{{Event}}"}}, f.read(t, storage.ValidationVariables))
}

func TestUsage_ListThenDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, pinnedWorkspace())
	f.addVariable("10", "Page Path", "v")
	unused := f.addVariable("11", "Old Cookie", "k")
	f.addTag(types.Tag{
		TagID:     "5",
		Name:      "purchase_event",
		Type:      types.TagTypeGA4Event,
		Parameter: []types.Parameter{types.Template("page", "{{Page Path}}")},
	})

	listing, err := f.app.ListUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Rows)

	rows := f.read(t, storage.VariableUsage)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0][usage.ColTagCount])
	assert.Equal(t, "purchase_event", rows[0][usage.ColTagNames])
	assert.Equal(t, "0", rows[1][usage.ColTagCount])

	// tick the unused variable for deletion
	grid := f.sheet(t, storage.SheetVariableUsage)
	grid[2] = append(grid[2].Padded(usage.WriteWidth), "true")
	require.NoError(t, f.wb.SetSheet(storage.SheetVariableUsage, grid))

	report, err := f.app.DeleteUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ReportCounts{Applied: 1}, report.Counts())

	deletes := f.svc.CallsTo("delete")
	require.Len(t, deletes, 1)
	assert.Equal(t, unused.Path, deletes[0].Path)

	require.Len(t, f.changes.Records, 1)
	record := f.changes.Records[0]
	assert.Equal(t, "Old Cookie", record.EntityName)
	assert.Equal(t, usage.ActionDeleted, record.Action)
	assert.Equal(t, "11", record.EntityID)
}

func TestDictionary(t *testing.T) {
	f := newFixture(t, pinnedWorkspace())
	f.addVariable("10", "Page Path", "v")
	f.addTag(types.Tag{
		TagID:           "5",
		Name:            "purchase_event",
		Type:            types.TagTypeGA4Event,
		FiringTriggerID: []string{"2147479553"},
		Notes:           "fires on every page",
		Parameter:       []types.Parameter{types.Template("page", "{{Page Path}}")},
	})
	f.addTag(types.Tag{TagID: "6", Name: "broken", Type: "html", BlockingTriggerID: []string{"404"}})

	listing, err := f.app.Dictionary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Rows)
	assert.Len(t, listing.Warnings, 1)

	rows := f.read(t, storage.DataDictionary)
	require.Len(t, rows, 1)
	assert.Equal(t, "5", rows[0][1])
	assert.Equal(t, "All Pages", rows[0][3])
	assert.Equal(t, "Page Path", rows[0][5])
	assert.Equal(t, "fires on every page", rows[0][6])
}
