// Package session orchestrates authentication state for the back-office:
// sign-in, sign-out, the initial resolution sequence, and reconciliation
// against the credential provider's event stream. It owns a single Snapshot
// that subscribers observe; all mutation goes through the Manager.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
)

const (
	// DefaultSessionCheckTimeout bounds the wait on the provider session
	// check during resolution. The underlying call is not cancelled when the
	// bound expires; its late result is ignored.
	DefaultSessionCheckTimeout = 3 * time.Second

	// DefaultDirectoryTimeout bounds the wait on the admin-directory lookup.
	DefaultDirectoryTimeout = 6 * time.Second

	// DefaultSessionTTL is the lifetime of a server-side session record.
	DefaultSessionTTL = 12 * time.Hour
)

// Options configures a Manager. Provider and Directory are required;
// Sessions may be nil when no server-side persistence is wanted (tests).
type Options struct {
	Provider  ports.CredentialProvider
	Directory ports.AdminDirectory
	Sessions  ports.SessionStore

	SessionTTL          time.Duration
	SessionCheckTimeout time.Duration
	DirectoryTimeout    time.Duration

	TimeProvider data.TimeProvider
	Logger       *slog.Logger
}

// Manager is the authentication state machine. It is safe for concurrent
// use; snapshot mutation is serialized behind a mutex and subscribers are
// notified outside of it.
type Manager struct {
	provider  ports.CredentialProvider
	directory ports.AdminDirectory
	sessions  ports.SessionStore

	ttl          time.Duration
	checkTimeout time.Duration
	dirTimeout   time.Duration

	tp     data.TimeProvider
	logger *slog.Logger

	mu      sync.Mutex
	snap    domainauth.Snapshot
	subs    map[int]func(domainauth.Snapshot)
	nextSub int
}

// NewManager builds a Manager, applying defaults for zero-valued timeouts.
func NewManager(opts Options) *Manager {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.SessionCheckTimeout <= 0 {
		opts.SessionCheckTimeout = DefaultSessionCheckTimeout
	}
	if opts.DirectoryTimeout <= 0 {
		opts.DirectoryTimeout = DefaultDirectoryTimeout
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = &data.RealTimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		provider:     opts.Provider,
		directory:    opts.Directory,
		sessions:     opts.Sessions,
		ttl:          opts.SessionTTL,
		checkTimeout: opts.SessionCheckTimeout,
		dirTimeout:   opts.DirectoryTimeout,
		tp:           opts.TimeProvider,
		logger:       opts.Logger,
		subs:         map[int]func(domainauth.Snapshot){},
	}
}

// Snapshot returns the current auth state.
func (m *Manager) Snapshot() domainauth.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Subscribe registers fn to be called with every snapshot change and returns
// an unsubscribe func. fn is invoked synchronously; keep it cheap.
func (m *Manager) Subscribe(fn func(domainauth.Snapshot)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(mutate func(*domainauth.Snapshot)) domainauth.Snapshot {
	m.mu.Lock()
	mutate(&m.snap)
	snap := m.snap
	fns := make([]func(domainauth.Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
	return snap
}

func (m *Manager) setIdentity(id *domainauth.Identity) {
	m.publish(func(s *domainauth.Snapshot) { s.Identity = id })
}

func (m *Manager) setLoading(v bool) {
	m.publish(func(s *domainauth.Snapshot) { s.Loading = v })
}

// ResolveInput carries optional verification-callback tokens delivered out
// of band (the signup e-mail redirect). When present they are exchanged for
// a credential before any session check runs.
type ResolveInput struct {
	VerificationAccessToken  string
	VerificationRefreshToken string
}

// ResolveResult reports the outcome of a resolution pass. TokenConsumed is
// true when verification tokens were present, so the caller can scrub them
// from the delivery channel regardless of exchange success.
type ResolveResult struct {
	Identity      *domainauth.Identity
	TokenConsumed bool
}

// Resolve runs the startup resolution sequence: exchange verification tokens
// if present, then check for an existing provider session, then map the
// credential to an authorized identity. Loading is set for the duration of
// the pass and cleared on every path, including panics.
func (m *Manager) Resolve(ctx context.Context, in ResolveInput) ResolveResult {
	m.setLoading(true)
	defer m.setLoading(false)

	res := ResolveResult{}

	if in.VerificationAccessToken != "" || in.VerificationRefreshToken != "" {
		res.TokenConsumed = true
		cred, err := m.provider.SetSession(ctx, in.VerificationAccessToken, in.VerificationRefreshToken)
		if err == nil {
			res.Identity = m.resolveIdentity(ctx, cred)
			return res
		}
		// A failed exchange falls through to the normal session check.
		m.logger.Warn("verification token exchange failed", "error", err)
	}

	cred, err := WaitBounded(ctx, m.checkTimeout, m.provider.GetSession)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			// Explicit absence: clear any stale identity.
			m.setIdentity(nil)
			return res
		}
		// Timeout or transport failure: treat as no session for this pass
		// only. The in-memory identity, if any, stays untouched.
		m.logger.Warn("session check did not complete", "error", err)
		res.Identity = m.Snapshot().Identity
		return res
	}

	res.Identity = m.resolveIdentity(ctx, cred)
	return res
}

// resolveIdentity maps a valid credential to an identity via the admin
// directory and publishes the result. The three outcomes are: a directory
// record, an explicit not-provisioned rejection (credential is revoked), or
// an ambiguous failure (fallback identity, availability over strictness).
func (m *Manager) resolveIdentity(ctx context.Context, cred domainauth.Credential) *domainauth.Identity {
	identity, err := WaitBounded(ctx, m.dirTimeout, func(ctx context.Context) (domainauth.Identity, error) {
		return m.directory.FindByAuthID(ctx, cred.UserID)
	})
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotProvisioned):
		m.logger.Info("credential has no directory record, signing out", "auth_id", cred.UserID)
		if soErr := m.provider.SignOut(ctx); soErr != nil {
			m.logger.Warn("sign-out after rejection failed", "error", soErr)
		}
		m.setIdentity(nil)
		return nil
	default:
		m.logger.Warn("directory lookup failed, using fallback identity",
			"auth_id", cred.UserID, "error", err)
		identity = cred.FallbackIdentity()
	}
	id := identity
	m.setIdentity(&id)
	return &id
}

// LoginResult is the structured outcome of a login attempt. Failures are
// values, not errors; transport problems inside the attempt surface as a
// generic failure message.
type LoginResult struct {
	Success           bool
	NeedsVerification bool
	Message           string
	Session           *domainauth.Session
}

const (
	msgInvalidCredentials = "Invalid email or password."
	msgNotVerified        = "Please verify your email address before signing in."
	msgNotProvisioned     = "Your account has been created but is awaiting approval. Contact an administrator to finish provisioning."
	msgLoginUnavailable   = "Sign-in is temporarily unavailable. Please try again."
)

// Login attempts a password sign-in and, on success, resolves the identity
// and creates a server-side session. An authenticated credential with no
// directory record is corrected by an immediate provider sign-out so the
// half-authenticated state cannot persist.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	m.setLoading(true)
	defer m.setLoading(false)

	cred, err := m.provider.SignInWithPassword(ctx, email, password)
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials):
		return LoginResult{Message: msgInvalidCredentials}
	case errors.Is(err, ports.ErrEmailNotVerified):
		return LoginResult{NeedsVerification: true, Message: msgNotVerified}
	case err != nil:
		m.logger.Error("password sign-in failed", "error", err)
		return LoginResult{Message: msgLoginUnavailable}
	}
	if !cred.EmailConfirmed {
		// Some providers accept the password but report the address as
		// unconfirmed instead of erroring.
		return LoginResult{NeedsVerification: true, Message: msgNotVerified}
	}

	return m.completeLogin(ctx, cred)
}

// LoginWithCredential finishes a login from an externally obtained
// credential (the SSO callback). It applies the same directory mapping and
// corrective sign-out as a password login.
func (m *Manager) LoginWithCredential(ctx context.Context, cred domainauth.Credential) LoginResult {
	m.setLoading(true)
	defer m.setLoading(false)

	if !cred.EmailConfirmed {
		return LoginResult{NeedsVerification: true, Message: msgNotVerified}
	}
	return m.completeLogin(ctx, cred)
}

func (m *Manager) completeLogin(ctx context.Context, cred domainauth.Credential) LoginResult {
	identity, err := WaitBounded(ctx, m.dirTimeout, func(ctx context.Context) (domainauth.Identity, error) {
		return m.directory.FindByAuthID(ctx, cred.UserID)
	})
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotProvisioned):
		if soErr := m.provider.SignOut(ctx); soErr != nil {
			m.logger.Warn("corrective sign-out failed", "error", soErr)
		}
		return LoginResult{Message: msgNotProvisioned}
	default:
		m.logger.Warn("directory lookup failed during login, using fallback identity",
			"auth_id", cred.UserID, "error", err)
		identity = cred.FallbackIdentity()
	}

	sess, err := m.EstablishSession(ctx, identity)
	if err != nil {
		m.logger.Error("session save failed", "error", err)
		return LoginResult{Message: msgLoginUnavailable}
	}
	return LoginResult{Success: true, Session: sess}
}

// EstablishSession creates and persists a server-side session for an
// already-resolved identity and publishes it as the current identity.
func (m *Manager) EstablishSession(ctx context.Context, identity domainauth.Identity) (*domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		ExpiresAt: m.tp.Now().Add(m.ttl),
	}
	if m.sessions != nil {
		if err := m.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
	}
	m.setIdentity(&sess.Identity)
	return &sess, nil
}

// Logout signs out everywhere: server-side session record, provider
// credential, and in-memory identity. Every step is best effort and the
// method is safe to call when already signed out.
func (m *Manager) Logout(ctx context.Context, sessionID string) {
	if m.sessions != nil && sessionID != "" {
		if err := m.sessions.Delete(ctx, sessionID); err != nil {
			m.logger.Warn("session delete failed", "session_id", sessionID, "error", err)
		}
	}
	if err := m.provider.SignOut(ctx); err != nil {
		m.logger.Warn("provider sign-out failed", "error", err)
	}
	m.setIdentity(nil)
}

// ResendVerification re-triggers the signup verification e-mail.
func (m *Manager) ResendVerification(ctx context.Context, email, redirectTo string) error {
	return m.provider.Resend(ctx, email, redirectTo)
}

// GetSession loads a server-side session by id, enforcing expiry.
func (m *Manager) GetSession(ctx context.Context, id string) (domainauth.Session, error) {
	if m.sessions == nil {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	sess, err := m.sessions.Get(ctx, id)
	if err != nil {
		return domainauth.Session{}, err
	}
	if m.tp.Now().After(sess.ExpiresAt) {
		if err := m.sessions.Delete(ctx, id); err != nil {
			m.logger.Warn("expired session delete failed", "session_id", id, "error", err)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Reconcile re-checks auth state after an interruption (e.g. the admin UI
// regained visibility). If an identity is already present nothing happens;
// otherwise a still-valid provider session re-resolves it.
func (m *Manager) Reconcile(ctx context.Context) {
	if m.Snapshot().Authenticated() {
		return
	}
	cred, err := WaitBounded(ctx, m.checkTimeout, m.provider.GetSession)
	if err != nil {
		if !errors.Is(err, ports.ErrNoCredential) {
			m.logger.Warn("reconcile session check failed", "error", err)
		}
		return
	}
	m.resolveIdentity(ctx, cred)
}

// Run consumes the provider's credential-change stream until ctx is done or
// the stream closes. Sign-outs clear the identity immediately; any event
// carrying a credential re-runs the directory mapping. A lookup that errors
// here never clears an existing identity on its own.
func (m *Manager) Run(ctx context.Context) {
	events := m.provider.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch {
			case ev.Kind == ports.AuthEventSignedOut:
				m.setIdentity(nil)
			case ev.Credential != nil:
				m.resolveIdentity(ctx, *ev.Credential)
			}
		}
	}
}
