package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEventStore is a func-hook double for the event repository.
type stubEventStore struct {
	CreateFunc  func(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByIDFunc func(ctx context.Context, id string) (*model.Event, error)
	ListFunc    func(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error)
	UpdateFunc  func(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (s *stubEventStore) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	return s.CreateFunc(ctx, req)
}

func (s *stubEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.GetByIDFunc(ctx, id)
}

func (s *stubEventStore) List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
	return s.ListFunc(ctx, opts)
}

func (s *stubEventStore) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	return s.UpdateFunc(ctx, id, req)
}

func (s *stubEventStore) Delete(ctx context.Context, id string) error {
	return s.DeleteFunc(ctx, id)
}

func testEvent(id string, published bool) *model.Event {
	return &model.Event{
		ID:        id,
		Title:     "Summer Gala",
		Published: published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// staffSession returns a minimal back-office session for context injection.
func staffSession() *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-staff",
		Identity:  domainauth.Identity{ID: "u1", Role: domainauth.RoleModerator},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// pathRequest builds a request with the given path value wired, matching
// how the mux sets it for "/{id}" patterns.
func pathRequest(method, target, id string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.SetPathValue("id", id)
	return r
}

func TestEventHandlers_PublicList_ForcesPublished(t *testing.T) {
	var gotOpts model.EventsListOptions
	store := &stubEventStore{
		ListFunc: func(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
			gotOpts = opts
			return []*model.Event{testEvent("e1", true)}, nil
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=5", nil)
	w := httptest.NewRecorder()
	h.PublicList(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOpts.PublishedOnly)
	assert.Equal(t, 5, gotOpts.Limit)
}

func TestEventHandlers_PublicList_SessionIncludesDrafts(t *testing.T) {
	var gotOpts model.EventsListOptions
	store := &stubEventStore{
		ListFunc: func(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
			gotOpts = opts
			return []*model.Event{testEvent("e1", false)}, nil
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), staffSession()))
	w := httptest.NewRecorder()
	h.PublicList(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotOpts.PublishedOnly)
}

func TestEventHandlers_PublicGet_UnpublishedIs404(t *testing.T) {
	store := &stubEventStore{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return testEvent(id, false), nil
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	w := httptest.NewRecorder()
	h.PublicGet(w, pathRequest(http.MethodGet, "/api/events/e1", "e1", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandlers_PublicGet_SessionSeesDraft(t *testing.T) {
	store := &stubEventStore{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return testEvent(id, false), nil
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	req := pathRequest(http.MethodGet, "/api/events/e1", "e1", "")
	req = req.WithContext(SetSessionInContext(req.Context(), staffSession()))
	w := httptest.NewRecorder()
	h.PublicGet(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventHandlers_Get_NotFound(t *testing.T) {
	store := &stubEventStore{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return nil, data.ErrEventNotFound
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	w := httptest.NewRecorder()
	h.Get(w, pathRequest(http.MethodGet, "/api/admin/events/missing", "missing", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandlers_Create(t *testing.T) {
	store := &stubEventStore{
		CreateFunc: func(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
			ev := testEvent("e-new", false)
			ev.Title = req.Title
			return ev, nil
		},
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/events",
		strings.NewReader(`{"title":"Autumn Ball","description":"","location":""}`))
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var ev model.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
	assert.Equal(t, "Autumn Ball", ev.Title)
}

func TestEventHandlers_Create_ValidationError(t *testing.T) {
	h := &EventHandlers{Events: &stubEventStore{}, Logger: discardSlog()}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/events",
		strings.NewReader(`{"title":"   "}`))
	w := httptest.NewRecorder()
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlers_Delete(t *testing.T) {
	store := &stubEventStore{
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	h := &EventHandlers{Events: store, Logger: discardSlog()}

	w := httptest.NewRecorder()
	h.Delete(w, pathRequest(http.MethodDelete, "/api/admin/events/e1", "e1", ""))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestWriteStoreError_Internal(t *testing.T) {
	w := httptest.NewRecorder()
	writeStoreError(w, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
