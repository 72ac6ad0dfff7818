// Package gtmtest provides an in-memory Tag Manager service for tests.
package gtmtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/yairfalse/tagsync/internal/gtm"
	"google.golang.org/api/googleapi"
)

// Call records one request made against the fake
type Call struct {
	Method  string
	Kind    gtm.Kind
	Path    string
	Payload json.RawMessage
}

// Service is a gtm.Service backed by maps. Resources are stored per parent
// path in insertion order.
type Service struct {
	mu        sync.Mutex
	PageSize  int
	resources map[gtm.Kind]map[string][]json.RawMessage
	failures  map[string]error
	calls     []Call
	nextID    int
}

// New returns an empty service that pages every 200 items
func New() *Service {
	return &Service{
		PageSize:  200,
		resources: make(map[gtm.Kind]map[string][]json.RawMessage),
		failures:  make(map[string]error),
		nextID:    100,
	}
}

// Add stores v under parent
func (s *Service) Add(kind gtm.Kind, parent string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("gtmtest: encode %s: %v", kind, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(kind)[parent] = append(s.bucket(kind)[parent], raw)
}

// FailOn makes the named method fail for path. Method is one of list, get,
// create, update or delete.
func (s *Service) FailOn(method, path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = err
}

// APIError builds the error the real client returns for an HTTP fault
func APIError(code int, message string) error {
	return &googleapi.Error{Code: code, Message: message}
}

// Calls returns a copy of the recorded calls
func (s *Service) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the recorded calls of one method
func (s *Service) CallsTo(method string) []Call {
	var out []Call
	for _, call := range s.Calls() {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Items returns the stored resources of kind under parent
func (s *Service) Items(kind gtm.Kind, parent string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.bucket(kind)[parent]
	out := make([]json.RawMessage, len(items))
	copy(out, items)
	return out
}

// Decode unmarshals a stored or recorded payload into v
func Decode(raw json.RawMessage, v interface{}) {
	if err := json.Unmarshal(raw, v); err != nil {
		panic(fmt.Sprintf("gtmtest: decode: %v", err))
	}
}

// ListPage implements gtm.Service. Page tokens are item offsets.
func (s *Service) ListPage(_ context.Context, kind gtm.Kind, parent, pageToken string) (gtm.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list", kind, parent, nil)
	if err := s.failure("list", parent); err != nil {
		return gtm.Page{}, err
	}

	items := s.bucket(kind)[parent]
	start := 0
	if pageToken != "" {
		offset, err := strconv.Atoi(pageToken)
		if err != nil {
			return gtm.Page{}, APIError(http.StatusBadRequest, "invalid page token")
		}
		start = offset
	}

	end := len(items)
	if s.PageSize > 0 && start+s.PageSize < end {
		end = start + s.PageSize
	}

	page := gtm.Page{Items: append([]json.RawMessage(nil), items[start:end]...)}
	if end < len(items) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

// Get implements gtm.Service
func (s *Service) Get(_ context.Context, kind gtm.Kind, path string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get", kind, path, nil)
	if err := s.failure("get", path); err != nil {
		return nil, err
	}

	parent, i := s.find(kind, path)
	if i < 0 {
		return nil, notFound(path)
	}
	return s.bucket(kind)[parent][i], nil
}

// Create implements gtm.Service. The stored resource gets a fresh id, path
// and UI link.
func (s *Service) Create(_ context.Context, kind gtm.Kind, parent string, payload json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create", kind, parent, payload)
	if err := s.failure("create", parent); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, APIError(http.StatusBadRequest, err.Error())
	}

	s.nextID++
	id := strconv.Itoa(s.nextID)
	path := gtm.ChildPath(parent, kind, id)
	if field := idField(kind); field != "" {
		fields[field] = id
	}
	fields["path"] = path
	fields["tagManagerUrl"] = gtm.ContainerURL(path)

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	s.bucket(kind)[parent] = append(s.bucket(kind)[parent], raw)
	return raw, nil
}

// Update implements gtm.Service
func (s *Service) Update(_ context.Context, kind gtm.Kind, path string, payload json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("update", kind, path, payload)
	if err := s.failure("update", path); err != nil {
		return nil, err
	}

	parent, i := s.find(kind, path)
	if i < 0 {
		return nil, notFound(path)
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, APIError(http.StatusBadRequest, err.Error())
	}
	fields["path"] = path
	if field := idField(kind); field != "" {
		fields[field] = gtm.LastSegment(path)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	s.bucket(kind)[parent][i] = raw
	return raw, nil
}

// Delete implements gtm.Service
func (s *Service) Delete(_ context.Context, kind gtm.Kind, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete", kind, path, nil)
	if err := s.failure("delete", path); err != nil {
		return err
	}

	parent, i := s.find(kind, path)
	if i < 0 {
		return notFound(path)
	}
	items := s.bucket(kind)[parent]
	s.bucket(kind)[parent] = append(items[:i:i], items[i+1:]...)
	return nil
}

func (s *Service) bucket(kind gtm.Kind) map[string][]json.RawMessage {
	if s.resources[kind] == nil {
		s.resources[kind] = make(map[string][]json.RawMessage)
	}
	return s.resources[kind]
}

func (s *Service) record(method string, kind gtm.Kind, path string, payload json.RawMessage) {
	s.calls = append(s.calls, Call{Method: method, Kind: kind, Path: path, Payload: payload})
}

func (s *Service) failure(method, path string) error {
	return s.failures[method+" "+path]
}

func (s *Service) find(kind gtm.Kind, path string) (string, int) {
	for parent, items := range s.bucket(kind) {
		for i, raw := range items {
			var ref struct {
				Path string `json:"path"`
			}
			if err := json.Unmarshal(raw, &ref); err == nil && ref.Path == path {
				return parent, i
			}
		}
	}
	return "", -1
}

func notFound(path string) error {
	return APIError(http.StatusNotFound, fmt.Sprintf("Not found or permission denied for %s.", path))
}

func idField(kind gtm.Kind) string {
	switch kind {
	case gtm.KindTags:
		return "tagId"
	case gtm.KindTriggers:
		return "triggerId"
	case gtm.KindVariables:
		return "variableId"
	case gtm.KindWorkspaces:
		return "workspaceId"
	case gtm.KindContainers:
		return "containerId"
	case gtm.KindAccounts:
		return "accountId"
	}
	return ""
}

// CountingPacer counts pauses instead of sleeping
type CountingPacer struct {
	mu     sync.Mutex
	pauses int
}

// Pause implements gtm.Pacer
func (p *CountingPacer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses++
}

// Pauses returns the number of pauses so far
func (p *CountingPacer) Pauses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauses
}
