package oidc

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/marquee-events/marquee/internal/ports"
)

func TestNewProvider_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
	}{
		{"missing client id", ProviderConfig{ClientSecret: "s", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing client secret", ProviderConfig{ClientID: "c", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing redirect URL", ProviderConfig{ClientID: "c", ClientSecret: "s", DiscoveryURL: "d"}},
		{"missing discovery URL", ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBegin_ProducesStateNonceAndAuthURL(t *testing.T) {
	p := &Provider{config: &oauth2.Config{
		ClientID:    "client-1",
		RedirectURL: "https://marquee.test/api/auth/sso/callback",
		Scopes:      []string{"openid", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://idp.test/authorize",
			TokenURL: "https://idp.test/token",
		},
	}}

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{
		RedirectURL: "https://marquee.test/api/auth/sso/callback",
	})
	require.NoError(t, err)

	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)
	assert.NotEqual(t, state, nonce)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, nonce, q.Get("nonce"))
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "openid email", q.Get("scope"))
}

func TestBegin_RequiresRedirectURL(t *testing.T) {
	p := &Provider{config: &oauth2.Config{}}
	_, _, _, err := p.Begin(context.Background(), ports.BeginInput{})
	assert.Error(t, err)
}

func TestExchange_RequiresCodeAndNonce(t *testing.T) {
	p := &Provider{config: &oauth2.Config{}}

	_, err := p.Exchange(context.Background(), ports.ExchangeInput{Nonce: "n"})
	assert.Error(t, err)

	_, err = p.Exchange(context.Background(), ports.ExchangeInput{Code: "c"})
	assert.Error(t, err)
}

func TestRandomString(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := randomString(32)
		require.NoError(t, err)
		assert.Len(t, s, 32)
		assert.False(t, seen[s], "random strings must not repeat")
		seen[s] = true
	}

	s, err := randomString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}
