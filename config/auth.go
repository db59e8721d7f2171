package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword signs admins in through the hosted credential
	// provider's password grant.
	AuthModePassword AuthMode = "password"
	// AuthModeSSO uses a redirect-based OIDC flow for back-office sign-in.
	AuthModeSSO AuthMode = "sso"
	// AuthModeMock uses a local, config-driven provider (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "sso", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, sso, mock)", v)
	}
}

// AuthAPIConfig points at the hosted credential provider's HTTP API.
type AuthAPIConfig struct {
	BaseURL string `env:"BASE_URL"`
	// APIKey is the provider's public (anon) key sent with every request.
	APIKey string `env:"API_KEY"`
	// VerifyRedirectTo is where verification e-mails send the user back to.
	VerifyRedirectTo string `env:"VERIFY_REDIRECT_TO" envDefault:"http://localhost:8080/admin"`
	// RequestTimeout bounds individual provider HTTP calls.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// SSOConfig contains OIDC configuration for the optional SSO mode.
type SSOConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/api/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the mock provider identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID       string `env:"USER_ID"       envDefault:"dev-user"`
	Email        string `env:"EMAIL"         envDefault:"dev@marquee.local"`
	PasswordHash string `env:"PASSWORD_HASH"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// API configuration for the hosted provider (used when Mode=password).
	API AuthAPIConfig `envPrefix:"AUTH_API_"`

	// SSO configuration (used when Mode=sso).
	SSO SSOConfig `envPrefix:"SSO_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is how long server-side sessions live.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`

	// SessionCheckTimeout bounds the existing-session check during
	// resolution. A hung provider call must not block the caller.
	SessionCheckTimeout time.Duration `env:"AUTH_SESSION_CHECK_TIMEOUT" envDefault:"3s"`

	// DirectoryTimeout bounds the admin-directory lookup. Kept independent
	// of SessionCheckTimeout because this lookup can be slower.
	DirectoryTimeout time.Duration `env:"AUTH_DIRECTORY_TIMEOUT" envDefault:"6s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	if a.SessionCheckTimeout <= 0 {
		a.SessionCheckTimeout = 3 * time.Second
	}
	if a.DirectoryTimeout <= 0 {
		a.DirectoryTimeout = 6 * time.Second
	}
}
