package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marquee-events/marquee/config"
	"github.com/marquee-events/marquee/internal/adapters/authapi"
	"github.com/marquee-events/marquee/internal/adapters/devauth"
	"github.com/marquee-events/marquee/internal/adapters/directory"
	"github.com/marquee-events/marquee/internal/adapters/oidc"
	redisstore "github.com/marquee-events/marquee/internal/adapters/redis"
	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/ports"
	"github.com/marquee-events/marquee/internal/session"
)

// AuthContainer holds the auth collaborators built from configuration.
type AuthContainer struct {
	Manager *session.Manager
	// SSO is non-nil only when Mode=sso.
	SSO ports.SSOProvider
}

// AuthDeps groups runtime dependencies for BuildAuth.
type AuthDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  goredis.UniversalClient
	Logger *slog.Logger
}

// BuildAuth constructs the credential provider for the configured mode, the
// admin directory, the Redis-backed session store and the session manager.
func BuildAuth(deps AuthDeps) (*AuthContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	authCfg := deps.Config.Auth

	container := &AuthContainer{}

	var provider ports.CredentialProvider
	switch authCfg.Mode {
	case config.AuthModePassword:
		client, err := authapi.New(authapi.Options{
			BaseURL: authCfg.API.BaseURL,
			APIKey:  authCfg.API.APIKey,
			Client:  &http.Client{Timeout: authCfg.API.RequestTimeout},
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build auth api client: %w", err)
		}
		provider = client
	case config.AuthModeSSO:
		sso, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     authCfg.SSO.ClientID,
			ClientSecret: authCfg.SSO.ClientSecret,
			RedirectURL:  authCfg.SSO.RedirectURL,
			Scope:        authCfg.SSO.Scope,
			DiscoveryURL: authCfg.SSO.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		container.SSO = sso
		// SSO still needs a CredentialProvider for sign-out and the
		// event stream; the mock provider fills that role since all
		// credential state lives in server sessions.
		dev, err := devauth.NewProvider(devauth.Config{})
		if err != nil {
			return nil, fmt.Errorf("build sso credential shim: %w", err)
		}
		provider = dev
	case config.AuthModeMock:
		dev, err := devauth.NewProvider(devauth.Config{
			UserID:       authCfg.DevAuth.UserID,
			Email:        authCfg.DevAuth.Email,
			PasswordHash: authCfg.DevAuth.PasswordHash,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		provider = dev
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", authCfg.Mode)
	}

	container.Manager = session.NewManager(session.Options{
		Provider:            provider,
		Directory:           directory.New(data.NewAdminUserRepo(deps.DB)),
		Sessions:            redisstore.NewSessionStore(deps.Redis),
		SessionTTL:          authCfg.SessionTTL,
		SessionCheckTimeout: authCfg.SessionCheckTimeout,
		DirectoryTimeout:    authCfg.DirectoryTimeout,
		Logger:              logger,
	})
	return container, nil
}
