package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	mockauth "github.com/marquee-events/marquee/internal/mocks/auth"
	"github.com/marquee-events/marquee/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminRecord(authID string) domainauth.Identity {
	return domainauth.Identity{
		ID:          "rec-1",
		AuthID:      authID,
		Email:       "owner@marquee.test",
		DisplayName: "Owner",
		Role:        domainauth.RoleAdmin,
	}
}

func newTestManager(provider *mockauth.MockCredentialProvider, dir *mockauth.MockDirectory, store ports.SessionStore) *Manager {
	return NewManager(Options{
		Provider:            provider,
		Directory:           dir,
		Sessions:            store,
		SessionCheckTimeout: 100 * time.Millisecond,
		DirectoryTimeout:    100 * time.Millisecond,
		Logger:              testLogger(),
	})
}

func TestResolve_ValidSessionResolvesIdentity(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{})

	require.NotNil(t, res.Identity)
	assert.Equal(t, domainauth.RoleAdmin, res.Identity.Role)
	assert.False(t, res.Identity.Fallback)
	assert.False(t, res.TokenConsumed)

	snap := m.Snapshot()
	assert.True(t, snap.Authenticated())
	assert.False(t, snap.Loading)
}

func TestResolve_ExplicitAbsenceClearsIdentity(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	// Establish an identity, then make the provider report no credential.
	m.Resolve(context.Background(), ResolveInput{})
	require.True(t, m.Snapshot().Authenticated())

	provider.GetSessionFunc = func(ctx context.Context) (domainauth.Credential, error) {
		return domainauth.Credential{}, ports.ErrNoCredential
	}
	res := m.Resolve(context.Background(), ResolveInput{})

	assert.Nil(t, res.Identity)
	assert.False(t, m.Snapshot().Authenticated())
}

func TestResolve_HungSessionCheckIsBounded(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	provider := mockauth.NewMockCredentialProvider()
	provider.GetSessionFunc = func(ctx context.Context) (domainauth.Credential, error) {
		<-release
		return domainauth.Credential{}, nil
	}
	dir := mockauth.NewMockDirectory()
	m := newTestManager(provider, dir, nil)

	start := time.Now()
	res := m.Resolve(context.Background(), ResolveInput{})

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, res.Identity)
	assert.False(t, m.Snapshot().Loading, "loading must clear even when the check hangs")
}

func TestResolve_TransportFailureKeepsExistingIdentity(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	m.Resolve(context.Background(), ResolveInput{})
	require.True(t, m.Snapshot().Authenticated())

	provider.GetSessionFunc = func(ctx context.Context) (domainauth.Credential, error) {
		return domainauth.Credential{}, errors.New("connection refused")
	}
	m.Resolve(context.Background(), ResolveInput{})

	// A failed check is not an explicit absence; the identity survives.
	assert.True(t, m.Snapshot().Authenticated())
}

func TestResolve_VerificationTokensExchangedBeforeSessionCheck(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{
		VerificationAccessToken:  "acc",
		VerificationRefreshToken: "ref",
	})

	assert.True(t, res.TokenConsumed)
	require.NotNil(t, res.Identity)

	_, getSession, setSession, _, _ := provider.Counts()
	assert.Equal(t, 1, setSession)
	assert.Zero(t, getSession, "token exchange must preempt the session check")
}

func TestResolve_FailedExchangeFallsThroughToSessionCheck(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.SetSessionFunc = func(ctx context.Context, _, _ string) (domainauth.Credential, error) {
		return domainauth.Credential{}, errors.New("token expired")
	}
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{VerificationAccessToken: "stale"})

	assert.True(t, res.TokenConsumed)
	require.NotNil(t, res.Identity, "normal session check should still run")
	_, getSession, _, _, _ := provider.Counts()
	assert.Equal(t, 1, getSession)
}

func TestResolve_AmbiguousDirectoryFailureGrantsFallback(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory()
	dir.Err = errors.New("directory unavailable")
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{})

	require.NotNil(t, res.Identity)
	assert.True(t, res.Identity.Fallback)
	assert.Equal(t, domainauth.FallbackRole, res.Identity.Role)
	assert.Equal(t, provider.DefaultCredential.UserID, res.Identity.AuthID)

	_, _, _, signOut, _ := provider.Counts()
	assert.Zero(t, signOut, "ambiguous failure must not force a sign-out")
}

func TestResolve_HungDirectoryLookupGrantsFallback(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory()
	dir.FindFunc = func(ctx context.Context, authID string) (domainauth.Identity, error) {
		<-release
		return domainauth.Identity{}, nil
	}
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{})

	require.NotNil(t, res.Identity)
	assert.True(t, res.Identity.Fallback)
}

func TestResolve_NotProvisionedSignsOut(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory() // no records
	m := newTestManager(provider, dir, nil)

	res := m.Resolve(context.Background(), ResolveInput{})

	assert.Nil(t, res.Identity)
	assert.False(t, m.Snapshot().Authenticated())
	_, _, _, signOut, _ := provider.Counts()
	assert.Equal(t, 1, signOut)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.SignInFunc = func(ctx context.Context, _, _ string) (domainauth.Credential, error) {
		return domainauth.Credential{}, ports.ErrInvalidCredentials
	}
	m := newTestManager(provider, mockauth.NewMockDirectory(), nil)

	res := m.Login(context.Background(), "x@y.test", "wrong")

	assert.False(t, res.Success)
	assert.False(t, res.NeedsVerification)
	assert.NotEmpty(t, res.Message)
	assert.False(t, m.Snapshot().Authenticated())
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.SignInFunc = func(ctx context.Context, _, _ string) (domainauth.Credential, error) {
		return domainauth.Credential{}, ports.ErrEmailNotVerified
	}
	m := newTestManager(provider, mockauth.NewMockDirectory(), nil)

	res := m.Login(context.Background(), "new@y.test", "pw")

	assert.False(t, res.Success)
	assert.True(t, res.NeedsVerification)
}

func TestLogin_UnconfirmedCredentialTreatedAsUnverified(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.DefaultCredential.EmailConfirmed = false
	m := newTestManager(provider, mockauth.NewMockDirectory(), nil)

	res := m.Login(context.Background(), "new@y.test", "pw")

	assert.True(t, res.NeedsVerification)
}

func TestLogin_NotProvisionedSignsOutAndExplains(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory() // sign-in works, no directory record
	m := newTestManager(provider, dir, mockauth.NewMemorySessionStore())

	res := m.Login(context.Background(), "pending@y.test", "pw")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "awaiting approval")
	assert.False(t, m.Snapshot().Authenticated())
	_, _, _, signOut, _ := provider.Counts()
	assert.Equal(t, 1, signOut, "half-authenticated state must be corrected")
}

func TestLogin_SuccessCreatesSession(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	store := mockauth.NewMemorySessionStore()
	m := newTestManager(provider, dir, store)

	res := m.Login(context.Background(), "owner@marquee.test", "pw")

	require.True(t, res.Success)
	require.NotNil(t, res.Session)
	assert.NotEmpty(t, res.Session.ID)
	assert.True(t, res.Session.IsAdmin())
	assert.Equal(t, 1, store.Len())
	assert.True(t, m.Snapshot().Authenticated())
}

func TestLogin_SessionSaveFailure(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	store := mockauth.NewMemorySessionStore()
	store.SaveErr = errors.New("redis down")
	m := newTestManager(provider, dir, store)

	res := m.Login(context.Background(), "owner@marquee.test", "pw")

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestLogout_Idempotent(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	store := mockauth.NewMemorySessionStore()
	m := newTestManager(provider, dir, store)

	res := m.Login(context.Background(), "owner@marquee.test", "pw")
	require.True(t, res.Success)

	m.Logout(context.Background(), res.Session.ID)
	assert.False(t, m.Snapshot().Authenticated())
	assert.Zero(t, store.Len())

	// Second logout with the same id is a no-op, not an error.
	m.Logout(context.Background(), res.Session.ID)
	assert.False(t, m.Snapshot().Authenticated())
}

func TestLogout_BestEffortWhenProviderFails(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.SignOutFunc = func(ctx context.Context) error { return errors.New("network") }
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	m.Resolve(context.Background(), ResolveInput{})
	require.True(t, m.Snapshot().Authenticated())

	m.Logout(context.Background(), "")
	assert.False(t, m.Snapshot().Authenticated(), "local state clears even if the provider call fails")
}

func TestGetSession_Expiry(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	store := mockauth.NewMemorySessionStore()
	tp := data.NewFixedTimeProvider(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m := NewManager(Options{
		Provider:     provider,
		Directory:    dir,
		Sessions:     store,
		SessionTTL:   time.Hour,
		TimeProvider: tp,
		Logger:       testLogger(),
	})

	res := m.Login(context.Background(), "owner@marquee.test", "pw")
	require.True(t, res.Success)

	got, err := m.GetSession(context.Background(), res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, got.ID)

	tp.SetTime(tp.Now().Add(2 * time.Hour))
	_, err = m.GetSession(context.Background(), res.Session.ID)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Zero(t, store.Len(), "expired record is removed")
}

func TestReconcile_RestoresIdentityWhenSessionStillValid(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	require.False(t, m.Snapshot().Authenticated())
	m.Reconcile(context.Background())
	assert.True(t, m.Snapshot().Authenticated())
}

func TestReconcile_NoopWhenAlreadyAuthenticated(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	m.Resolve(context.Background(), ResolveInput{})
	_, before, _, _, _ := provider.Counts()

	m.Reconcile(context.Background())
	_, after, _, _, _ := provider.Counts()
	assert.Equal(t, before, after, "no provider round-trip when identity is present")
}

func TestRun_SignedOutEventClearsIdentity(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	m.Resolve(context.Background(), ResolveInput{})
	require.True(t, m.Snapshot().Authenticated())

	cleared := make(chan struct{})
	unsub := m.Subscribe(func(s domainauth.Snapshot) {
		if !s.Authenticated() {
			select {
			case cleared <- struct{}{}:
			default:
			}
		}
	})
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	provider.Emit(ports.AuthEvent{Kind: ports.AuthEventSignedOut})

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("sign-out event was not applied")
	}
}

func TestRun_RefreshEventReresolvesIdentity(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	resolved := make(chan struct{})
	unsub := m.Subscribe(func(s domainauth.Snapshot) {
		if s.Authenticated() {
			select {
			case resolved <- struct{}{}:
			default:
			}
		}
	})
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	cred := provider.DefaultCredential
	provider.Emit(ports.AuthEvent{Kind: ports.AuthEventTokenRefreshed, Credential: &cred})

	select {
	case <-resolved:
	case <-time.After(time.Second):
		t.Fatal("refresh event did not resolve an identity")
	}
	assert.True(t, m.Snapshot().Authenticated())
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	dir := mockauth.NewMockDirectory(adminRecord(provider.DefaultCredential.UserID))
	m := newTestManager(provider, dir, nil)

	var calls int
	unsub := m.Subscribe(func(domainauth.Snapshot) { calls++ })

	m.Resolve(context.Background(), ResolveInput{})
	require.Positive(t, calls)

	before := calls
	unsub()
	m.Logout(context.Background(), "")
	assert.Equal(t, before, calls)
}
