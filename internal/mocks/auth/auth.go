package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialProvider = (*MockCredentialProvider)(nil)
	_ ports.AdminDirectory     = (*MockDirectory)(nil)
	_ ports.SessionStore       = (*MemorySessionStore)(nil)
)

// MockCredentialProvider simulates a hosted credential provider. Each method
// can be overridden by a func field; unset methods return deterministic
// defaults. Call counts are tracked for assertions.
type MockCredentialProvider struct {
	SignInFunc     func(ctx context.Context, email, password string) (domainauth.Credential, error)
	GetSessionFunc func(ctx context.Context) (domainauth.Credential, error)
	SetSessionFunc func(ctx context.Context, accessToken, refreshToken string) (domainauth.Credential, error)
	SignOutFunc    func(ctx context.Context) error
	ResendFunc     func(ctx context.Context, email, redirectTo string) error

	DefaultCredential domainauth.Credential

	mu              sync.Mutex
	events          chan ports.AuthEvent
	SignInCalls     int
	GetSessionCalls int
	SetSessionCalls int
	SignOutCalls    int
	ResendCalls     int
}

// NewMockCredentialProvider creates a provider with a confirmed default
// credential and a buffered event stream.
func NewMockCredentialProvider() *MockCredentialProvider {
	return &MockCredentialProvider{
		DefaultCredential: domainauth.Credential{
			UserID:         "mock-user-1",
			Email:          "mock.user@example.com",
			EmailConfirmed: true,
			AccessToken:    "mock-access",
			RefreshToken:   "mock-refresh",
			ExpiresAt:      time.Now().Add(time.Hour),
			Metadata:       map[string]string{"display_name": "Mock User"},
		},
		events: make(chan ports.AuthEvent, 8),
	}
}

func (m *MockCredentialProvider) SignInWithPassword(ctx context.Context, email, password string) (domainauth.Credential, error) {
	m.mu.Lock()
	m.SignInCalls++
	m.mu.Unlock()
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	cred := m.DefaultCredential
	cred.Email = email
	return cred, nil
}

func (m *MockCredentialProvider) GetSession(ctx context.Context) (domainauth.Credential, error) {
	m.mu.Lock()
	m.GetSessionCalls++
	m.mu.Unlock()
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx)
	}
	return m.DefaultCredential, nil
}

func (m *MockCredentialProvider) SetSession(ctx context.Context, accessToken, refreshToken string) (domainauth.Credential, error) {
	m.mu.Lock()
	m.SetSessionCalls++
	m.mu.Unlock()
	if m.SetSessionFunc != nil {
		return m.SetSessionFunc(ctx, accessToken, refreshToken)
	}
	cred := m.DefaultCredential
	cred.AccessToken = accessToken
	cred.RefreshToken = refreshToken
	return cred, nil
}

func (m *MockCredentialProvider) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.SignOutCalls++
	m.mu.Unlock()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *MockCredentialProvider) Resend(ctx context.Context, email, redirectTo string) error {
	m.mu.Lock()
	m.ResendCalls++
	m.mu.Unlock()
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, email, redirectTo)
	}
	return nil
}

func (m *MockCredentialProvider) Events() <-chan ports.AuthEvent { return m.events }

// Emit pushes an event onto the stream, as the real provider would on a
// credential change.
func (m *MockCredentialProvider) Emit(ev ports.AuthEvent) { m.events <- ev }

// CloseEvents closes the event stream.
func (m *MockCredentialProvider) CloseEvents() { close(m.events) }

// Counts returns a snapshot of the per-method call counters.
func (m *MockCredentialProvider) Counts() (signIn, getSession, setSession, signOut, resend int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SignInCalls, m.GetSessionCalls, m.SetSessionCalls, m.SignOutCalls, m.ResendCalls
}

// MockDirectory resolves auth ids from a fixed map. Unknown ids return
// ports.ErrNotProvisioned; set Err to force an ambiguous failure instead.
type MockDirectory struct {
	FindFunc func(ctx context.Context, authID string) (domainauth.Identity, error)

	Records map[string]domainauth.Identity
	Err     error

	mu        sync.Mutex
	FindCalls int
}

// NewMockDirectory creates a directory pre-populated with the given records.
func NewMockDirectory(records ...domainauth.Identity) *MockDirectory {
	m := &MockDirectory{Records: map[string]domainauth.Identity{}}
	for _, r := range records {
		m.Records[r.AuthID] = r
	}
	return m
}

func (m *MockDirectory) FindByAuthID(ctx context.Context, authID string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.FindCalls++
	m.mu.Unlock()
	if m.FindFunc != nil {
		return m.FindFunc(ctx, authID)
	}
	if m.Err != nil {
		return domainauth.Identity{}, m.Err
	}
	id, ok := m.Records[authID]
	if !ok {
		return domainauth.Identity{}, ports.ErrNotProvisioned
	}
	return id, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
