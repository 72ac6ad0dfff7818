package gtm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/tagmanager/v2"
)

// Page is one page of a list call
type Page struct {
	Items         []json.RawMessage
	NextPageToken string
}

// Service issues exactly one remote call per method. Resources travel as
// raw JSON in the Tag Manager wire shape.
type Service interface {
	ListPage(ctx context.Context, kind Kind, parent, pageToken string) (Page, error)
	Get(ctx context.Context, kind Kind, path string) (json.RawMessage, error)
	Create(ctx context.Context, kind Kind, parent string, payload json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, kind Kind, path string, payload json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, kind Kind, path string) error
}

// Scopes required by the tagmanager backed service
var Scopes = []string{
	tagmanager.TagmanagerReadonlyScope,
	tagmanager.TagmanagerEditContainersScope,
}

// TagManagerService implements Service with the Tag Manager v2 API
type TagManagerService struct {
	api *tagmanager.Service
}

// NewTagManagerService creates the API client
func NewTagManagerService(ctx context.Context, opts ...option.ClientOption) (*TagManagerService, error) {
	api, err := tagmanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag manager service: %w", err)
	}
	return &TagManagerService{api: api}, nil
}

// ListPage implements Service
func (s *TagManagerService) ListPage(ctx context.Context, kind Kind, parent, pageToken string) (Page, error) {
	ws := s.api.Accounts.Containers.Workspaces

	switch kind {
	case KindAccounts:
		call := s.api.Accounts.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Account, resp.NextPageToken)

	case KindContainers:
		call := s.api.Accounts.Containers.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Container, resp.NextPageToken)

	case KindWorkspaces:
		call := ws.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Workspace, resp.NextPageToken)

	case KindTags:
		call := ws.Tags.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Tag, resp.NextPageToken)

	case KindTriggers:
		call := ws.Triggers.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Trigger, resp.NextPageToken)

	case KindVariables:
		call := ws.Variables.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.Variable, resp.NextPageToken)

	case KindBuiltInVariables:
		call := ws.BuiltInVariables.List(parent).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return Page{}, err
		}
		return newPage(resp.BuiltInVariable, resp.NextPageToken)
	}

	return Page{}, unsupported("list", kind)
}

// Get implements Service
func (s *TagManagerService) Get(ctx context.Context, kind Kind, path string) (json.RawMessage, error) {
	ws := s.api.Accounts.Containers.Workspaces

	switch kind {
	case KindAccounts:
		return encode(s.api.Accounts.Get(path).Context(ctx).Do())
	case KindContainers:
		return encode(s.api.Accounts.Containers.Get(path).Context(ctx).Do())
	case KindWorkspaces:
		return encode(ws.Get(path).Context(ctx).Do())
	case KindTags:
		return encode(ws.Tags.Get(path).Context(ctx).Do())
	case KindTriggers:
		return encode(ws.Triggers.Get(path).Context(ctx).Do())
	case KindVariables:
		return encode(ws.Variables.Get(path).Context(ctx).Do())
	}

	return nil, unsupported("get", kind)
}

// Create implements Service
func (s *TagManagerService) Create(ctx context.Context, kind Kind, parent string, payload json.RawMessage) (json.RawMessage, error) {
	ws := s.api.Accounts.Containers.Workspaces

	switch kind {
	case KindTags:
		tag, err := decode[tagmanager.Tag](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Tags.Create(parent, tag).Context(ctx).Do())
	case KindTriggers:
		trigger, err := decode[tagmanager.Trigger](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Triggers.Create(parent, trigger).Context(ctx).Do())
	case KindVariables:
		variable, err := decode[tagmanager.Variable](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Variables.Create(parent, variable).Context(ctx).Do())
	}

	return nil, unsupported("create", kind)
}

// Update implements Service
func (s *TagManagerService) Update(ctx context.Context, kind Kind, path string, payload json.RawMessage) (json.RawMessage, error) {
	ws := s.api.Accounts.Containers.Workspaces

	switch kind {
	case KindTags:
		tag, err := decode[tagmanager.Tag](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Tags.Update(path, tag).Context(ctx).Do())
	case KindTriggers:
		trigger, err := decode[tagmanager.Trigger](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Triggers.Update(path, trigger).Context(ctx).Do())
	case KindVariables:
		variable, err := decode[tagmanager.Variable](payload)
		if err != nil {
			return nil, err
		}
		return encode(ws.Variables.Update(path, variable).Context(ctx).Do())
	}

	return nil, unsupported("update", kind)
}

// Delete implements Service
func (s *TagManagerService) Delete(ctx context.Context, kind Kind, path string) error {
	ws := s.api.Accounts.Containers.Workspaces

	switch kind {
	case KindTags:
		return ws.Tags.Delete(path).Context(ctx).Do()
	case KindTriggers:
		return ws.Triggers.Delete(path).Context(ctx).Do()
	case KindVariables:
		return ws.Variables.Delete(path).Context(ctx).Do()
	}

	return unsupported("delete", kind)
}

func unsupported(op string, kind Kind) error {
	return fmt.Errorf("%s is not supported for %s", op, kind)
}

func newPage[T any](items []*T, next string) (Page, error) {
	page := Page{Items: make([]json.RawMessage, 0, len(items)), NextPageToken: next}
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return Page{}, fmt.Errorf("encode list item: %w", err)
		}
		page.Items = append(page.Items, raw)
	}
	return page, nil
}

func encode[T any](resource *T, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(resource)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return raw, nil
}

func decode[T any](payload json.RawMessage) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(payload, out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
