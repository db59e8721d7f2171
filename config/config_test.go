package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    AuthMode
		wantErr bool
	}{
		{name: "password", input: "password", want: AuthModePassword},
		{name: "sso uppercase", input: "SSO", want: AuthModeSSO},
		{name: "mock", input: "mock", want: AuthModeMock},
		{name: "invalid", input: "oauth2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var m AuthMode
			err := m.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, AuthModePassword, cfg.Auth.Mode)
	assert.Equal(t, 3*time.Second, cfg.Auth.SessionCheckTimeout)
	assert.Equal(t, 6*time.Second, cfg.Auth.DirectoryTimeout)
	assert.Equal(t, "marquee", cfg.Postgres.Name)
	assert.NotEmpty(t, cfg.Site.PlaceholderMarkers)
}

func TestAuthConfig_SanitizeClampsTimeouts(t *testing.T) {
	t.Parallel()

	a := AuthConfig{SessionCheckTimeout: -1, DirectoryTimeout: 0, SessionTTL: 0}
	a.Sanitize()

	assert.Equal(t, 3*time.Second, a.SessionCheckTimeout)
	assert.Equal(t, 6*time.Second, a.DirectoryTimeout)
	assert.Equal(t, 12*time.Hour, a.SessionTTL)
}

func TestSiteConfig_SanitizeTrimsMarkers(t *testing.T) {
	t.Parallel()

	s := SiteConfig{
		PublicStorageBaseURL: "https://cdn.marqueeevents.com/",
		PlaceholderMarkers:   []string{" Springfield ", "", "00000"},
	}
	s.Sanitize()

	assert.Equal(t, "https://cdn.marqueeevents.com", s.PublicStorageBaseURL)
	assert.Equal(t, []string{"Springfield", "00000"}, s.PlaceholderMarkers)
}
