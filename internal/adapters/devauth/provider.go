package devauth

// Package devauth provides a config-driven CredentialProvider for local
// development. It keeps a single in-memory credential and never talks to the
// network, so the full sign-in flow works offline.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
)

// Config controls the dev provider behavior. When PasswordHash is empty any
// password is accepted.
type Config struct {
	UserID       string
	Email        string
	PasswordHash string        // bcrypt hash
	TokenTTL     time.Duration // default 8h when zero
}

// Provider implements ports.CredentialProvider against local config.
type Provider struct {
	cfg    Config
	tokTTL time.Duration

	mu     sync.Mutex
	cred   *domainauth.Credential
	events chan ports.AuthEvent
}

var _ ports.CredentialProvider = (*Provider)(nil)

// NewProvider constructs a dev credential provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 8 * time.Hour
	}
	return &Provider{cfg: cfg, tokTTL: ttl, events: make(chan ports.AuthEvent, 8)}, nil
}

func (p *Provider) SignInWithPassword(_ context.Context, email, password string) (domainauth.Credential, error) {
	if email != p.cfg.Email {
		return domainauth.Credential{}, ports.ErrInvalidCredentials
	}
	if p.cfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(p.cfg.PasswordHash), []byte(password)); err != nil {
			return domainauth.Credential{}, ports.ErrInvalidCredentials
		}
	}

	cred := p.freshCredential()
	p.mu.Lock()
	p.cred = &cred
	p.mu.Unlock()
	p.emit(ports.AuthEvent{Kind: ports.AuthEventSignedIn, Credential: &cred})
	return cred, nil
}

func (p *Provider) GetSession(context.Context) (domainauth.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cred == nil || time.Now().After(p.cred.ExpiresAt) {
		return domainauth.Credential{}, ports.ErrNoCredential
	}
	return *p.cred, nil
}

// SetSession accepts any non-empty token pair, mirroring a verification
// exchange that always succeeds in development.
func (p *Provider) SetSession(_ context.Context, accessToken, refreshToken string) (domainauth.Credential, error) {
	if accessToken == "" && refreshToken == "" {
		return domainauth.Credential{}, ports.ErrNoCredential
	}
	cred := p.freshCredential()
	p.mu.Lock()
	p.cred = &cred
	p.mu.Unlock()
	return cred, nil
}

func (p *Provider) SignOut(context.Context) error {
	p.mu.Lock()
	had := p.cred != nil
	p.cred = nil
	p.mu.Unlock()
	if had {
		p.emit(ports.AuthEvent{Kind: ports.AuthEventSignedOut})
	}
	return nil
}

func (p *Provider) Resend(context.Context, string, string) error { return nil }

func (p *Provider) Events() <-chan ports.AuthEvent { return p.events }

func (p *Provider) emit(ev ports.AuthEvent) {
	select {
	case p.events <- ev:
	default:
		// Nobody is draining the stream; drop rather than block.
	}
}

func (p *Provider) freshCredential() domainauth.Credential {
	return domainauth.Credential{
		UserID:         p.cfg.UserID,
		Email:          p.cfg.Email,
		EmailConfirmed: true,
		AccessToken:    randomToken(32),
		RefreshToken:   randomToken(32),
		ExpiresAt:      time.Now().Add(p.tokTTL),
		Metadata:       map[string]string{"display_name": "Dev User"},
	}
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
