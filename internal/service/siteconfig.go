package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/marquee-events/marquee/config"
	"github.com/marquee-events/marquee/internal/domain/model"
)

type settingsReader interface {
	List(ctx context.Context) ([]*model.Setting, error)
}

type socialLinksReader interface {
	List(ctx context.Context) ([]*model.SocialLink, error)
}

// SiteConfigServiceOptions groups dependencies for SiteConfigService.
type SiteConfigServiceOptions struct {
	Settings settingsReader
	Social   socialLinksReader
	Config   config.SiteConfig
	Logger   *slog.Logger
}

// SiteConfigService assembles the public site-config view-model: contact
// details, hero/about text, branding, and social links. Stored values that
// are missing, unreadable, or recognizable seed placeholders fall back to
// configured defaults so the public site never renders sample data.
type SiteConfigService struct {
	settings settingsReader
	social   socialLinksReader
	cfg      config.SiteConfig
	logger   *slog.Logger
}

// NewSiteConfigService constructs a new SiteConfigService.
func NewSiteConfigService(opts SiteConfigServiceOptions) *SiteConfigService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &SiteConfigService{
		settings: opts.Settings,
		social:   opts.Social,
		cfg:      opts.Config,
		logger:   opts.Logger,
	}
}

// SocialEntry is one resolved social link.
type SocialEntry struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// PublicSiteConfig is the aggregated configuration served to the public site.
type PublicSiteConfig struct {
	ContactEmail string        `json:"contact_email"`
	ContactPhone string        `json:"contact_phone"`
	Address      string        `json:"address"`
	LogoURL      string        `json:"logo_url"`
	HeroHeading  string        `json:"hero_heading"`
	HeroSubtext  string        `json:"hero_subtext"`
	AboutText    string        `json:"about_text"`
	Social       []SocialEntry `json:"social"`
}

// Load fetches settings and social links in parallel and merges them with
// defaults. It never returns an error; a failed read degrades that section.
func (s *SiteConfigService) Load(ctx context.Context) *PublicSiteConfig {
	var (
		settings []*model.Setting
		links    []*model.SocialLink
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.settings.List(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "settings read failed, serving defaults", "error", err)
			return nil
		}
		settings = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.social.List(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "social links read failed", "error", err)
			return nil
		}
		links = rows
		return nil
	})
	_ = g.Wait()

	values := map[string]string{}
	for _, row := range settings {
		values[row.Key] = row.Value
	}

	out := &PublicSiteConfig{
		ContactEmail: s.valueOr(values[model.SettingContactEmail], s.cfg.DefaultContactEmail),
		ContactPhone: s.valueOr(values[model.SettingContactPhone], s.cfg.DefaultContactPhone),
		Address:      s.valueOr(values[model.SettingAddress], s.cfg.DefaultAddress),
		HeroHeading:  s.valueOr(values[model.SettingHeroHeading], ""),
		HeroSubtext:  s.valueOr(values[model.SettingHeroSubtext], ""),
		AboutText:    s.valueOr(values[model.SettingAboutText], ""),
		LogoURL:      s.logoURL(values[model.SettingLogoPath]),
		Social:       s.socialEntries(links),
	}
	return out
}

// valueOr returns stored unless it is empty or a known placeholder.
func (s *SiteConfigService) valueOr(stored, fallback string) string {
	stored = strings.TrimSpace(stored)
	if stored == "" || s.isPlaceholder(stored) {
		return fallback
	}
	return stored
}

// isPlaceholder reports whether v contains any configured seed marker.
// Matching is case-insensitive substring: seed rows vary in casing and are
// often embedded in longer strings ("Visit us at 123 Main Street!").
func (s *SiteConfigService) isPlaceholder(v string) bool {
	lower := strings.ToLower(v)
	for _, marker := range s.cfg.PlaceholderMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// logoURL resolves a stored logo path against the public storage base URL.
// Absolute URLs pass through; placeholders and empty values use the default.
func (s *SiteConfigService) logoURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || s.isPlaceholder(path) {
		return s.cfg.DefaultLogoURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.cfg.PublicStorageBaseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *SiteConfigService) socialEntries(links []*model.SocialLink) []SocialEntry {
	out := make([]SocialEntry, 0, len(links))
	for _, l := range links {
		if s.isPlaceholder(l.URL) {
			continue
		}
		entry := SocialEntry{Platform: l.Platform, Label: l.Label, URL: l.URL}
		if entry.Platform == "" {
			entry.Platform = inferPlatform(l.URL)
		}
		if entry.Label == "" {
			entry.Label = capitalize(entry.Platform)
		}
		out = append(out, entry)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// inferPlatform derives a platform name from the link's registrable domain,
// so "https://www.instagram.com/marquee" maps to "instagram" regardless of
// subdomain or country suffix.
func inferPlatform(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return ""
	}
	name, _, found := strings.Cut(domain, ".")
	if !found {
		return domain
	}
	return strings.ToLower(name)
}
