package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tagsync/internal/app"
	"github.com/yairfalse/tagsync/internal/changelog"
	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/gtm/gtmtest"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/mapping"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/config"
	"github.com/yairfalse/tagsync/pkg/types"
)

const workspacePath = "accounts/1/containers/2/workspaces/3"

type harness struct {
	dir     string
	cfgFile string
	svc     *gtmtest.Service
	wb      *storage.LocalWorkbook
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
spreadsheet:
  backend: local
  local_dir: `+filepath.Join(dir, "workbook")+`
workspace:
  path: `+workspacePath+`
  name: Default Workspace
api:
  request_delay: 0s
actor: analyst@example.com
`), 0o600))

	wb, err := storage.NewLocalWorkbook(filepath.Join(dir, "workbook"))
	require.NoError(t, err)

	h := &harness{dir: dir, cfgFile: cfgFile, svc: gtmtest.New(), wb: wb}

	previous := appFactory
	appFactory = func(_ context.Context, cfg *config.Config, log logger.Logger) (*app.App, error) {
		return app.New(app.Options{
			Client:    gtm.NewClient(h.svc, nil, log),
			Workbook:  h.wb,
			Changes:   changelog.NewRecorder(h.wb, cfg.Actor),
			Logger:    log,
			Workspace: mapping.WorkspaceRef{Name: cfg.Workspace.Name, Path: cfg.Workspace.Path},
		}), nil
	}
	t.Cleanup(func() { appFactory = previous })
	return h
}

func (h *harness) run(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", h.cfgFile, "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) createRow(t *testing.T, name string) {
	t.Helper()
	row := types.NewRow(mapping.EventTagReadWidth)
	row[mapping.ColWorkspaceName] = "Default Workspace"
	row[mapping.ColWorkspacePath] = workspacePath
	row[mapping.ColTagName] = name
	row[mapping.ColEventName] = name
	row[mapping.EventTagWriteWidth] = "true"
	require.NoError(t, h.wb.SetSheet(storage.SheetEventTags, []types.Row{{"header"}, row}))
}

func TestRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()
	for _, path := range [][]string{
		{"workspace", "accounts"},
		{"workspace", "containers"},
		{"workspace", "workspaces"},
		{"event-tags", "list"},
		{"event-tags", "modify"},
		{"params", "list"},
		{"params", "tags"},
		{"params", "modify"},
		{"variables", "validation"},
		{"usage", "list"},
		{"usage", "delete"},
		{"dictionary", "tags"},
		{"check-config"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	for _, name := range []string{"config", "workspace", "spreadsheet", "backend", "log-level", "output", "no-color", "fail-on-error"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestEventTagsList_JSON(t *testing.T) {
	h := newHarness(t)
	h.svc.Add(gtm.KindTags, workspacePath, types.Tag{
		TagID:     "5",
		Name:      "purchase_event",
		Type:      types.TagTypeGA4Event,
		Path:      workspacePath + "/tags/5",
		Parameter: []types.Parameter{types.Template("eventName", "purchase")},
	})

	out, err := h.run("--output", "json", "event-tags", "list")
	require.NoError(t, err)

	var listing types.Listing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, "event-tags list", listing.Operation)
	assert.Equal(t, storage.SheetEventTags, listing.Sheet)
	assert.Equal(t, 1, listing.Rows)
}

func TestEventTagsModify_Table(t *testing.T) {
	h := newHarness(t)
	h.createRow(t, "add_to_cart")

	out, err := h.run("event-tags", "modify")
	require.NoError(t, err)
	assert.Contains(t, out, "add_to_cart")
	assert.Contains(t, out, "Applied: 1  Failed: 0  Skipped: 0")

	changelogRows, err := h.wb.Read(context.Background(), storage.Changelog)
	require.NoError(t, err)
	require.Len(t, changelogRows, 1)
	assert.Equal(t, "analyst@example.com", changelogRows[0][6])
}

func TestEventTagsModify_FailOnError(t *testing.T) {
	h := newHarness(t)
	h.createRow(t, "add_to_cart")
	h.svc.FailOn("create", workspacePath, gtmtest.APIError(http.StatusBadRequest, "Invalid tag"))

	_, err := h.run("event-tags", "modify")
	assert.NoError(t, err, "row failures are reported, not fatal, by default")

	_, err = h.run("--fail-on-error", "event-tags", "modify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid tag")
}

func TestUnsupportedOutputFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--output", "xml", "dictionary", "tags")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: xml")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("version", "--short")
	require.NoError(t, err)
	assert.Equal(t, currentBuild().Version+"\n", out)

	out, err = h.run("--output", "json", "version")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Commit, info.Commit)
	assert.NotEmpty(t, info.GoVersion)

	out, err = h.run("--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tagsync "+currentBuild().Version)
	assert.Contains(t, out, "commit:")
}

func TestSetVersionInfo_KeepsDefaultsForEmptyValues(t *testing.T) {
	saved := []string{Version, Commit, BuildTime, BuiltBy}
	t.Cleanup(func() { SetVersionInfo(saved[0], saved[1], saved[2], saved[3]) })

	SetVersionInfo("v1.2.0", "", "2026-01-02", "")

	assert.Equal(t, "v1.2.0", Version)
	assert.Equal(t, saved[1], Commit)
	assert.Equal(t, "2026-01-02", BuildTime)
	assert.Equal(t, saved[3], BuiltBy)
}

func TestCheckConfig(t *testing.T) {
	h := newHarness(t)
	key := filepath.Join(h.dir, "key.json")
	require.NoError(t, os.WriteFile(key, []byte(`{"type":"service_account","client_email":"sync@proj.iam.gserviceaccount.com"}`), 0o600))
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", key)

	out, err := h.run("check-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Workbook: local directory")
	assert.Contains(t, out, "Workspace: "+workspacePath)
	assert.Contains(t, out, "service_account credentials for sync@proj.iam.gserviceaccount.com")
	assert.Contains(t, out, "Changelog actor: analyst@example.com")
}
