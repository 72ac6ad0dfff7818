package gtm_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tagsync/internal/gtm"
	"github.com/yairfalse/tagsync/internal/gtm/gtmtest"
	"github.com/yairfalse/tagsync/pkg/types"
)

const workspacePath = "accounts/1/containers/2/workspaces/3"

func newClient(svc gtm.Service) (*gtm.Client, *gtmtest.CountingPacer) {
	pacer := &gtmtest.CountingPacer{}
	return gtm.NewClient(svc, pacer, nil), pacer
}

func TestClient_ListFollowsPagination(t *testing.T) {
	svc := gtmtest.New()
	for i := 0; i < 450; i++ {
		svc.Add(gtm.KindTags, workspacePath, types.Tag{
			TagID: fmt.Sprint(i),
			Name:  fmt.Sprintf("tag_%03d", i),
			Path:  gtm.ChildPath(workspacePath, gtm.KindTags, fmt.Sprint(i)),
		})
	}
	client, pacer := newClient(svc)

	tags := client.ListTags(context.Background(), workspacePath)

	require.Len(t, tags, 450)
	assert.Equal(t, "tag_000", tags[0].Name)
	assert.Equal(t, "tag_200", tags[200].Name)
	assert.Equal(t, "tag_449", tags[449].Name)
	assert.Len(t, svc.CallsTo("list"), 3)
	assert.Equal(t, 3, pacer.Pauses())
}

func TestClient_ListSinglePage(t *testing.T) {
	svc := gtmtest.New()
	svc.Add(gtm.KindTriggers, workspacePath, types.Trigger{TriggerID: "9", Name: "Checkout"})
	client, pacer := newClient(svc)

	triggers := client.ListTriggers(context.Background(), workspacePath)

	require.Len(t, triggers, 1)
	assert.Equal(t, "Checkout", triggers[0].Name)
	assert.Equal(t, 1, pacer.Pauses())
}

func TestClient_ListFaultYieldsNil(t *testing.T) {
	svc := gtmtest.New()
	svc.Add(gtm.KindVariables, workspacePath, types.Variable{VariableID: "1", Name: "Page Path"})
	svc.FailOn("list", workspacePath, gtmtest.APIError(http.StatusForbidden, "The caller does not have permission"))
	client, pacer := newClient(svc)

	assert.Nil(t, client.ListVariables(context.Background(), workspacePath))
	assert.Equal(t, 1, pacer.Pauses(), "a failed request is still followed by the delay")
}

func TestClient_ListEmptyIsNotNil(t *testing.T) {
	client, _ := newClient(gtmtest.New())

	tags := client.ListTags(context.Background(), workspacePath)

	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestClient_CreateTag(t *testing.T) {
	svc := gtmtest.New()
	client, pacer := newClient(svc)

	result := client.CreateTag(context.Background(), workspacePath, types.Tag{
		Name:      "purchase_event",
		Type:      types.TagTypeGA4Event,
		Parameter: []types.Parameter{types.Template("eventName", "purchase")},
	})

	require.True(t, result.OK(), result.Detail().Message)
	created := result.Value()
	assert.NotEmpty(t, created.TagID)
	assert.Equal(t, gtm.ChildPath(workspacePath, gtm.KindTags, created.TagID), created.Path)
	assert.Equal(t, "purchase", created.ParamValue("eventName"))

	calls := svc.CallsTo("create")
	require.Len(t, calls, 1)
	assert.Equal(t, workspacePath, calls[0].Path)
	assert.Equal(t, 1, pacer.Pauses())
}

func TestClient_FaultsBecomeResults(t *testing.T) {
	svc := gtmtest.New()
	path := gtm.ChildPath(workspacePath, gtm.KindTags, "77")
	svc.FailOn("update", path, gtmtest.APIError(http.StatusBadRequest, "Invalid trigger reference"))
	client, pacer := newClient(svc)
	ctx := context.Background()

	update := client.UpdateTag(ctx, path, types.Tag{Name: "x"})
	assert.False(t, update.OK())
	assert.Equal(t, gtm.ErrorDetail{Code: http.StatusBadRequest, Message: "Invalid trigger reference"}, update.Detail())
	assert.EqualError(t, update.Err(), "Invalid trigger reference")

	get := client.GetTag(ctx, path)
	assert.False(t, get.OK())
	assert.Equal(t, http.StatusNotFound, get.Detail().Code)

	remove := client.Remove(ctx, gtm.KindTags, path)
	assert.False(t, remove.OK())

	assert.Equal(t, 3, pacer.Pauses())
}

func TestClient_RemoveDeletesResource(t *testing.T) {
	svc := gtmtest.New()
	path := gtm.ChildPath(workspacePath, gtm.KindVariables, "5")
	svc.Add(gtm.KindVariables, workspacePath, types.Variable{VariableID: "5", Path: path})
	client, _ := newClient(svc)

	result := client.Remove(context.Background(), gtm.KindVariables, path)

	assert.True(t, result.OK())
	assert.NoError(t, result.Err())
	assert.Empty(t, svc.Items(gtm.KindVariables, workspacePath))
}

func TestFail_PlainError(t *testing.T) {
	result := gtm.Fail[int](errors.New("connection reset"))
	assert.Equal(t, gtm.ErrorDetail{Message: "connection reset"}, result.Detail())
	assert.Zero(t, result.Value())
}

func TestPaths(t *testing.T) {
	path := gtm.ChildPath(workspacePath+"/", gtm.KindVariables, "12")
	assert.Equal(t, workspacePath+"/variables/12", path)
	assert.Equal(t, "12", gtm.LastSegment(path))
	assert.Equal(t, "12", gtm.LastSegment("12"))
	assert.Equal(t, "https://tagmanager.google.com/#/container/"+path, gtm.ContainerURL(path))
}
