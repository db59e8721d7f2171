package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/marquee-events/marquee/config"
	httpx "github.com/marquee-events/marquee/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Auth     *AuthContainer
	Services *ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := cfg.Services.Repos
	services := httpx.RouterServices{
		Manager:          cfg.Auth.Manager,
		SSO:              cfg.Auth.SSO,
		Events:           repos.Events,
		Albums:           repos.Albums,
		Images:           repos.Images,
		Inquiries:        cfg.Services.Inquiries,
		Offerings:        repos.Offerings,
		Team:             repos.Team,
		Testimonials:     repos.Testimonials,
		SocialLinks:      repos.SocialLinks,
		Settings:         repos.Settings,
		SiteConfig:       cfg.Services.SiteConfig,
		Dashboard:        cfg.Services.Dashboard,
		AdminUsers:       repos.AdminUsers,
		BaseURL:          appCfg.HTTP.BaseURL,
		CookieDomain:     appCfg.HTTP.CookieDomain,
		VerifyRedirectTo: appCfg.Auth.API.VerifyRedirectTo,
		Logger:           logger,
	}

	// Order: Recover -> Logging -> Compression -> Router
	handler := httpx.NewRouter(services)
	handler = httpx.Compression()(handler)
	handler = httpx.Logging(logger)(handler)
	handler = httpx.Recover(logger)(handler)

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
