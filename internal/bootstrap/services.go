package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/marquee-events/marquee/config"
	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/service"
)

// Repositories bundles all database repositories.
type Repositories struct {
	Events       *data.EventRepo
	Albums       *data.AlbumRepo
	Images       *data.GalleryImageRepo
	Inquiries    *data.InquiryRepo
	Offerings    *data.OfferingRepo
	Team         *data.TeamRepo
	Testimonials *data.TestimonialRepo
	SocialLinks  *data.SocialLinkRepo
	Settings     *data.SettingsRepo
	AdminUsers   *data.AdminUserRepo
}

// BuildRepositories constructs all repositories over one database handle.
func BuildRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Events:       data.NewEventRepo(db),
		Albums:       data.NewAlbumRepo(db),
		Images:       data.NewGalleryImageRepo(db),
		Inquiries:    data.NewInquiryRepo(db),
		Offerings:    data.NewOfferingRepo(db),
		Team:         data.NewTeamRepo(db),
		Testimonials: data.NewTestimonialRepo(db),
		SocialLinks:  data.NewSocialLinkRepo(db),
		Settings:     data.NewSettingsRepo(db),
		AdminUsers:   data.NewAdminUserRepo(db),
	}
}

// ServiceContainer holds the application services built on top of the
// repositories.
type ServiceContainer struct {
	Repos      *Repositories
	Dashboard  *service.DashboardService
	SiteConfig *service.SiteConfigService
	Inquiries  *service.InquiryService
}

// BuildServices wires repositories into services. The inquiry webhook
// notifier is optional; a missing URL disables it and a bad expression is a
// startup error surfaced via the log.
func BuildServices(repos *Repositories, cfg *config.AppConfig, logger *slog.Logger) *ServiceContainer {
	if logger == nil {
		logger = slog.Default()
	}

	var notifier service.InquiryNotifier
	if cfg.Site.InquiryWebhookURL != "" {
		wh, err := service.NewWebhookNotifier(service.WebhookNotifierOptions{
			URL:      cfg.Site.InquiryWebhookURL,
			BodyExpr: cfg.Site.InquiryWebhookBody,
			Logger:   logger,
		})
		if err != nil {
			logger.Error("inquiry webhook disabled", "error", err)
		} else {
			notifier = wh
		}
	}

	return &ServiceContainer{
		Repos: repos,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Repos: service.DashboardRepos{
				Events:       repos.Events,
				Albums:       repos.Albums,
				Gallery:      repos.Images,
				Inquiries:    repos.Inquiries,
				Testimonials: repos.Testimonials,
			},
			Logger: logger,
		}),
		SiteConfig: service.NewSiteConfigService(service.SiteConfigServiceOptions{
			Settings: repos.Settings,
			Social:   repos.SocialLinks,
			Config:   cfg.Site,
			Logger:   logger,
		}),
		Inquiries: service.NewInquiryService(service.InquiryServiceOptions{
			Repo:     repos.Inquiries,
			Notifier: notifier,
			Logger:   logger,
		}),
	}
}
