package gtm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Client wraps a Service with pagination, request pacing and per-call fault
// isolation. Failed mutations come back as error results; failed listings
// are logged and yield nil.
type Client struct {
	svc   Service
	pacer Pacer
	log   logger.Logger
}

// NewClient creates a client. A nil pacer disables the delay and a nil
// logger discards output.
func NewClient(svc Service, pacer Pacer, log logger.Logger) *Client {
	if pacer == nil {
		pacer = FixedDelay(0)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{svc: svc, pacer: pacer, log: log}
}

// List returns every resource of kind under parent in server order
func (c *Client) List(ctx context.Context, kind Kind, parent string) []json.RawMessage {
	var (
		items = []json.RawMessage{}
		token string
		pages int
	)

	for {
		page, err := c.svc.ListPage(ctx, kind, parent, token)
		c.pacer.Pause()
		pages++
		if err != nil {
			c.log.WithFields(map[string]interface{}{
				"kind":   string(kind),
				"parent": parent,
				"page":   pages,
			}).Error("list failed", err)
			return nil
		}

		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	c.log.WithFields(map[string]interface{}{
		"kind":  string(kind),
		"count": len(items),
		"pages": pages,
	}).Debug("listed resources")

	return items
}

// Get fetches one resource
func (c *Client) Get(ctx context.Context, kind Kind, path string) Result[json.RawMessage] {
	raw, err := c.svc.Get(ctx, kind, path)
	c.pacer.Pause()
	return c.result(raw, err, "get", kind, path)
}

// Create creates a resource under parent
func (c *Client) Create(ctx context.Context, kind Kind, parent string, payload json.RawMessage) Result[json.RawMessage] {
	raw, err := c.svc.Create(ctx, kind, parent, payload)
	c.pacer.Pause()
	return c.result(raw, err, "create", kind, parent)
}

// Update replaces the resource at path
func (c *Client) Update(ctx context.Context, kind Kind, path string, payload json.RawMessage) Result[json.RawMessage] {
	raw, err := c.svc.Update(ctx, kind, path, payload)
	c.pacer.Pause()
	return c.result(raw, err, "update", kind, path)
}

// Remove deletes the resource at path
func (c *Client) Remove(ctx context.Context, kind Kind, path string) Result[struct{}] {
	err := c.svc.Delete(ctx, kind, path)
	c.pacer.Pause()
	if err != nil {
		c.logFault("delete", kind, path, err)
		return Fail[struct{}](err)
	}
	return Ok(struct{}{})
}

func (c *Client) result(raw json.RawMessage, err error, op string, kind Kind, path string) Result[json.RawMessage] {
	if err != nil {
		c.logFault(op, kind, path, err)
		return Fail[json.RawMessage](err)
	}
	return Ok(raw)
}

func (c *Client) logFault(op string, kind Kind, path string, err error) {
	c.log.WithFields(map[string]interface{}{
		"op":   op,
		"kind": string(kind),
		"path": path,
	}).Warn(detailFrom(err).Message)
}

// ListAs lists and decodes resources. A listing that cannot be decoded is
// treated like a failed listing.
func ListAs[T any](ctx context.Context, c *Client, kind Kind, parent string) []T {
	raw := c.List(ctx, kind, parent)
	if raw == nil {
		return nil
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			c.log.WithField("kind", string(kind)).Error("decode listing", err)
			return nil
		}
		out = append(out, v)
	}
	return out
}

func decodeAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func encodeAs(v interface{}) (json.RawMessage, error) {
	return json.Marshal(v)
}

// ListAccounts lists every account visible to the caller
func (c *Client) ListAccounts(ctx context.Context) []types.Account {
	return ListAs[types.Account](ctx, c, KindAccounts, "")
}

// ListContainers lists the containers of an account
func (c *Client) ListContainers(ctx context.Context, accountPath string) []types.Container {
	return ListAs[types.Container](ctx, c, KindContainers, accountPath)
}

// ListWorkspaces lists the workspaces of a container
func (c *Client) ListWorkspaces(ctx context.Context, containerPath string) []types.Workspace {
	return ListAs[types.Workspace](ctx, c, KindWorkspaces, containerPath)
}

// ListTags lists the tags of a workspace
func (c *Client) ListTags(ctx context.Context, workspacePath string) []types.Tag {
	return ListAs[types.Tag](ctx, c, KindTags, workspacePath)
}

// ListTriggers lists the triggers of a workspace
func (c *Client) ListTriggers(ctx context.Context, workspacePath string) []types.Trigger {
	return ListAs[types.Trigger](ctx, c, KindTriggers, workspacePath)
}

// ListVariables lists the user-defined variables of a workspace
func (c *Client) ListVariables(ctx context.Context, workspacePath string) []types.Variable {
	return ListAs[types.Variable](ctx, c, KindVariables, workspacePath)
}

// ListBuiltInVariables lists the enabled built-in variables of a workspace
func (c *Client) ListBuiltInVariables(ctx context.Context, workspacePath string) []types.BuiltInVariable {
	return ListAs[types.BuiltInVariable](ctx, c, KindBuiltInVariables, workspacePath)
}

// GetTag fetches one tag
func (c *Client) GetTag(ctx context.Context, path string) Result[types.Tag] {
	return mapResult(c.Get(ctx, KindTags, path), decodeAs[types.Tag])
}

// CreateTag creates a tag in a workspace
func (c *Client) CreateTag(ctx context.Context, workspacePath string, tag types.Tag) Result[types.Tag] {
	payload, err := encodeAs(tag)
	if err != nil {
		return Fail[types.Tag](fmt.Errorf("encode tag: %w", err))
	}
	return mapResult(c.Create(ctx, KindTags, workspacePath, payload), decodeAs[types.Tag])
}

// UpdateTag replaces the tag at path
func (c *Client) UpdateTag(ctx context.Context, path string, tag types.Tag) Result[types.Tag] {
	payload, err := encodeAs(tag)
	if err != nil {
		return Fail[types.Tag](fmt.Errorf("encode tag: %w", err))
	}
	return mapResult(c.Update(ctx, KindTags, path, payload), decodeAs[types.Tag])
}
