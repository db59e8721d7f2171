package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marquee-events/marquee/internal/domain/model"
	mocksauth "github.com/marquee-events/marquee/internal/mocks/auth"
	"github.com/marquee-events/marquee/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettingsStore struct{}

func (stubSettingsStore) Get(context.Context, string) (*model.Setting, error) { return nil, nil }
func (stubSettingsStore) List(context.Context) ([]*model.Setting, error)      { return nil, nil }
func (stubSettingsStore) Upsert(context.Context, *model.UpsertSettingRequest) (*model.Setting, error) {
	return nil, nil
}
func (stubSettingsStore) Delete(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *AuthHandlers) {
	t.Helper()
	events := &stubEventStore{
		ListFunc: func(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
			return []*model.Event{testEvent("e1", true)}, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return testEvent(id, true), nil
		},
	}
	return newTestRouterWithEvents(t, events)
}

func newTestRouterWithEvents(t *testing.T, events eventStore) (http.Handler, *AuthHandlers) {
	t.Helper()
	provider := mocksauth.NewMockCredentialProvider()
	store := mocksauth.NewMemorySessionStore()
	mgr := session.NewManager(session.Options{
		Provider:  provider,
		Directory: mocksauth.NewMockDirectory(testAdminIdentity(provider.DefaultCredential.UserID)),
		Sessions:  store,
		Logger:    discardSlog(),
	})

	router := NewRouter(RouterServices{
		Manager:  mgr,
		Events:   events,
		Settings: stubSettingsStore{},
		Logger:   discardSlog(),
	})
	auth := &AuthHandlers{Manager: mgr, Logger: discardSlog()}
	return router, auth
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_PublicEventsOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PublicEventDraftVisibility(t *testing.T) {
	events := &stubEventStore{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return testEvent(id, false), nil
		},
	}
	router, auth := newTestRouterWithEvents(t, events)

	// Anonymous callers never see drafts.
	req := httptest.NewRequest(http.MethodGet, "/api/events/e1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	loginW := httptest.NewRecorder()
	auth.Login(loginW, loginReq)
	cookie := sessionCookie(t, loginW.Result())
	require.NotNil(t, cookie)

	// The same route shows the draft once a back-office session is attached.
	req = httptest.NewRequest(http.MethodGet, "/api/events/e1", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminWithSessionCookie(t *testing.T) {
	router, auth := newTestRouter(t)

	// Login through the handler to obtain a real session cookie.
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	loginW := httptest.NewRecorder()
	auth.Login(loginW, loginReq)
	cookie := sessionCookie(t, loginW.Result())
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
