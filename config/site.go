package config

import "strings"

// SiteConfig carries site-wide defaults and storage settings. The defaults
// back the site-config aggregator: whenever a remote value is missing or is a
// known placeholder/seed value, the default is served instead.
type SiteConfig struct {
	// PublicStorageBaseURL resolves bare storage paths (e.g. "branding/logo.png")
	// into fully-qualified URLs.
	PublicStorageBaseURL string `env:"SITE_STORAGE_BASE_URL" envDefault:"http://localhost:8080/storage"`

	// Default contact values, served when the database holds no real value.
	DefaultContactEmail string `env:"SITE_DEFAULT_CONTACT_EMAIL" envDefault:"hello@marqueeevents.com"`
	DefaultContactPhone string `env:"SITE_DEFAULT_CONTACT_PHONE" envDefault:"+1 (555) 010-4477"`
	DefaultAddress      string `env:"SITE_DEFAULT_ADDRESS"       envDefault:"214 Garland Avenue, Portland, OR 97209"`
	DefaultLogoURL      string `env:"SITE_DEFAULT_LOGO_URL"      envDefault:"/static/img/marquee-logo.svg"`

	// PlaceholderMarkers are seed substrings from initial data setup. A stored
	// value containing any of them is treated as absent. Semicolon separated.
	PlaceholderMarkers []string `env:"SITE_PLACEHOLDER_MARKERS" envSeparator:";" envDefault:"123 Main Street;Springfield;00000;example.com;Your Company"`

	// Inquiry notification webhook (optional). Body is a JMESPath expression
	// evaluated against the inquiry payload; empty URL disables the webhook.
	InquiryWebhookURL  string `env:"SITE_INQUIRY_WEBHOOK_URL"`
	InquiryWebhookBody string `env:"SITE_INQUIRY_WEBHOOK_BODY" envDefault:"{name: name, email: email, message: message}"`
}

// Sanitize applies guardrails to site configuration values.
func (s *SiteConfig) Sanitize() {
	s.PublicStorageBaseURL = strings.TrimRight(s.PublicStorageBaseURL, "/")

	markers := make([]string, 0, len(s.PlaceholderMarkers))
	for _, m := range s.PlaceholderMarkers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	s.PlaceholderMarkers = markers
}
