package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/session.

import (
	"context"
	"errors"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
)

// ErrInvalidCredentials is returned by SignInWithPassword when the provider
// rejects the password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailNotVerified is returned by SignInWithPassword when the account
// exists but its e-mail address has not been confirmed.
var ErrEmailNotVerified = errors.New("email not verified")

// ErrNoCredential is returned by GetSession when no valid credential exists.
// It is an explicit absence, distinct from transport failures.
var ErrNoCredential = errors.New("no credential")

// AuthEventKind classifies credential-change events pushed by the provider.
type AuthEventKind string

const (
	AuthEventSignedIn       AuthEventKind = "signed_in"
	AuthEventSignedOut      AuthEventKind = "signed_out"
	AuthEventTokenRefreshed AuthEventKind = "token_refreshed"
)

// AuthEvent is one entry of the provider's credential-change stream.
// Credential is nil for sign-out events.
type AuthEvent struct {
	Kind       AuthEventKind
	Credential *domainauth.Credential
}

// CredentialProvider is the hosted identity/credential collaborator.
// All calls are transport-bound and may fail or hang; callers own timeouts.
type CredentialProvider interface {
	// SignInWithPassword attempts a password sign-in. Rejections surface as
	// ErrInvalidCredentials or ErrEmailNotVerified; other errors are transport.
	SignInWithPassword(ctx context.Context, email, password string) (domainauth.Credential, error)

	// GetSession returns the current credential or ErrNoCredential.
	GetSession(ctx context.Context) (domainauth.Credential, error)

	// SetSession exchanges a token pair for a credential. Used for the
	// signup-verification callback exchange.
	SetSession(ctx context.Context, accessToken, refreshToken string) (domainauth.Credential, error)

	// SignOut clears the backend credential.
	SignOut(ctx context.Context) error

	// Resend re-triggers a signup verification e-mail.
	Resend(ctx context.Context, email, redirectTo string) error

	// Events returns the provider's credential-change stream. The channel is
	// closed when the provider shuts down.
	Events() <-chan AuthEvent
}

// ErrNotProvisioned is returned by AdminDirectory.FindByAuthID when no
// matching admin record exists. It means the backend account is explicitly
// not provisioned, as opposed to a lookup that errored or timed out.
var ErrNotProvisioned = errors.New("account not provisioned")

// AdminDirectory resolves a credential-provider user id to an authorized
// identity record.
type AdminDirectory interface {
	FindByAuthID(ctx context.Context, authID string) (domainauth.Identity, error)
}

// ErrSessionNotFound is returned by SessionStore.Get when no session exists
// for the given id, either because it was never created or it expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves server-side sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// BeginInput carries inputs for initiating an SSO flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOProvider initiates and completes a redirect-based login flow against an
// IdP. It is the optional alternative to password sign-in for the back-office.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the credential-shaped identity claims.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Credential, error)
}
