package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
	"github.com/marquee-events/marquee/internal/session"
)

// RouterServices holds all the collaborators the HTTP router needs.
type RouterServices struct {
	Manager *session.Manager
	SSO     ports.SSOProvider

	Events       eventStore
	Albums       albumStore
	Images       galleryImageStore
	Inquiries    inquirySubmitter
	Offerings    offeringStore
	Team         teamStore
	Testimonials testimonialStore
	SocialLinks  socialLinkStore
	Settings     settingsStore
	SiteConfig   siteConfigLoader
	Dashboard    dashboardLoader
	AdminUsers   adminUserStore

	BaseURL          string
	CookieDomain     string
	VerifyRedirectTo string
	Logger           *slog.Logger
}

// NewRouter creates and configures the HTTP router: public site endpoints,
// auth endpoints, and the role-guarded admin API.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Manager:          services.Manager,
		SSO:              services.SSO,
		BaseURL:          services.BaseURL,
		CookieDomain:     services.CookieDomain,
		VerifyRedirectTo: services.VerifyRedirectTo,
		Logger:           services.Logger,
	}
	eventHandlers := &EventHandlers{Events: services.Events, Logger: services.Logger}
	galleryHandlers := &GalleryHandlers{Albums: services.Albums, Images: services.Images, Logger: services.Logger}
	inquiryHandlers := &InquiryHandlers{Inquiries: services.Inquiries, Logger: services.Logger}
	contentHandlers := &ContentHandlers{
		Offerings:    services.Offerings,
		Team:         services.Team,
		Testimonials: services.Testimonials,
		SocialLinks:  services.SocialLinks,
		Logger:       services.Logger,
	}
	settingsHandlers := &SettingsHandlers{
		Settings:   services.Settings,
		SiteConfig: services.SiteConfig,
		Logger:     services.Logger,
	}
	dashboardHandlers := &DashboardHandlers{Dashboard: services.Dashboard}
	adminUserHandlers := &AdminUserHandlers{Users: services.AdminUsers, Logger: services.Logger}

	registerPublicRoutes(mux, publicHandlers{
		Events:   eventHandlers,
		Gallery:  galleryHandlers,
		Inquiry:  inquiryHandlers,
		Content:  contentHandlers,
		Settings: settingsHandlers,
	}, OptionalAuth(services.Manager))
	registerAuthRoutes(mux, authHandlers)
	registerAdminRoutes(mux, adminRouteConfig{
		Manager:    services.Manager,
		Events:     eventHandlers,
		Gallery:    galleryHandlers,
		Inquiry:    inquiryHandlers,
		Content:    contentHandlers,
		Settings:   settingsHandlers,
		Dashboard:  dashboardHandlers,
		AdminUsers: adminUserHandlers,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

type publicHandlers struct {
	Events   *EventHandlers
	Gallery  *GalleryHandlers
	Inquiry  *InquiryHandlers
	Content  *ContentHandlers
	Settings *SettingsHandlers
}

// registerPublicRoutes mounts the public site API. Event and album routes
// carry the session when one is present so a logged-in back-office user can
// preview drafts; everything else is fully anonymous.
func registerPublicRoutes(mux *http.ServeMux, h publicHandlers, withSession func(http.Handler) http.Handler) {
	mux.Handle("GET /api/events", withSession(http.HandlerFunc(h.Events.PublicList)))
	mux.Handle("GET /api/events/{id}", withSession(http.HandlerFunc(h.Events.PublicGet)))
	mux.Handle("GET /api/albums", withSession(http.HandlerFunc(h.Gallery.PublicList)))
	mux.Handle("GET /api/albums/{id}", withSession(http.HandlerFunc(h.Gallery.PublicGet)))
	mux.HandleFunc("POST /api/inquiries", h.Inquiry.Submit)
	mux.HandleFunc("GET /api/offerings", h.Content.PublicOfferings)
	mux.HandleFunc("GET /api/team", h.Content.PublicTeam)
	mux.HandleFunc("GET /api/testimonials", h.Content.PublicTestimonials)
	mux.HandleFunc("GET /api/site-config", h.Settings.PublicSiteConfig)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Session)
	mux.HandleFunc("POST /api/auth/resend", h.ResendVerification)
	mux.HandleFunc("POST /api/auth/reconcile", h.Reconcile)
	mux.HandleFunc("GET /api/auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /api/auth/sso/callback", h.SSOCallback)
}

type adminRouteConfig struct {
	Manager    *session.Manager
	Events     *EventHandlers
	Gallery    *GalleryHandlers
	Inquiry    *InquiryHandlers
	Content    *ContentHandlers
	Settings   *SettingsHandlers
	Dashboard  *DashboardHandlers
	AdminUsers *AdminUserHandlers
}

// registerAdminRoutes mounts the back-office API. Every route requires a
// session; destructive account management additionally requires the admin
// role, while content editing is open to moderators.
func registerAdminRoutes(mux *http.ServeMux, cfg adminRouteConfig) {
	authed := RequireAuth(cfg.Manager)
	adminOnly := RequireRole(cfg.Manager, domainauth.RoleAdmin)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}
	handleAdmin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, adminOnly(h))
	}

	handle("GET /api/admin/dashboard", cfg.Dashboard.Overview)

	handle("GET /api/admin/events", cfg.Events.List)
	handle("POST /api/admin/events", cfg.Events.Create)
	handle("GET /api/admin/events/{id}", cfg.Events.Get)
	handle("PATCH /api/admin/events/{id}", cfg.Events.Update)
	handle("DELETE /api/admin/events/{id}", cfg.Events.Delete)

	handle("GET /api/admin/albums", cfg.Gallery.List)
	handle("POST /api/admin/albums", cfg.Gallery.Create)
	handle("GET /api/admin/albums/{id}", cfg.Gallery.Get)
	handle("PATCH /api/admin/albums/{id}", cfg.Gallery.Update)
	handle("DELETE /api/admin/albums/{id}", cfg.Gallery.Delete)
	handle("POST /api/admin/albums/{id}/images", cfg.Gallery.AddImage)
	handle("DELETE /api/admin/gallery-images/{id}", cfg.Gallery.DeleteImage)

	handle("GET /api/admin/inquiries", cfg.Inquiry.List)
	handle("GET /api/admin/inquiries/stats", cfg.Inquiry.Stats)
	handle("GET /api/admin/inquiries/{id}", cfg.Inquiry.Get)
	handle("POST /api/admin/inquiries/{id}/read", cfg.Inquiry.MarkRead)
	handle("DELETE /api/admin/inquiries/{id}", cfg.Inquiry.Delete)

	handle("GET /api/admin/offerings", cfg.Content.ListOfferings)
	handle("POST /api/admin/offerings", cfg.Content.CreateOffering)
	handle("PUT /api/admin/offerings/{id}", cfg.Content.UpdateOffering)
	handle("DELETE /api/admin/offerings/{id}", cfg.Content.DeleteOffering)

	handle("GET /api/admin/team", cfg.Content.ListTeam)
	handle("POST /api/admin/team", cfg.Content.CreateTeamMember)
	handle("PUT /api/admin/team/{id}", cfg.Content.UpdateTeamMember)
	handle("DELETE /api/admin/team/{id}", cfg.Content.DeleteTeamMember)

	handle("GET /api/admin/testimonials", cfg.Content.ListTestimonials)
	handle("POST /api/admin/testimonials", cfg.Content.CreateTestimonial)
	handle("POST /api/admin/testimonials/{id}/approve", cfg.Content.ApproveTestimonial)
	handle("DELETE /api/admin/testimonials/{id}", cfg.Content.DeleteTestimonial)

	handle("GET /api/admin/social-links", cfg.Content.ListSocialLinks)
	handle("POST /api/admin/social-links", cfg.Content.CreateSocialLink)
	handle("DELETE /api/admin/social-links/{id}", cfg.Content.DeleteSocialLink)

	handle("GET /api/admin/settings", cfg.Settings.List)
	handle("GET /api/admin/settings/{key}", cfg.Settings.Get)
	handle("PUT /api/admin/settings/{key}", cfg.Settings.Upsert)
	handle("DELETE /api/admin/settings/{key}", cfg.Settings.Delete)

	handleAdmin("GET /api/admin/users", cfg.AdminUsers.List)
	handleAdmin("POST /api/admin/users", cfg.AdminUsers.Create)
	handleAdmin("PATCH /api/admin/users/{id}/role", cfg.AdminUsers.UpdateRole)
	handleAdmin("DELETE /api/admin/users/{id}", cfg.AdminUsers.Delete)
}
