package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/config"
	"github.com/marquee-events/marquee/internal/domain/model"
)

type stubSettings struct {
	rows []*model.Setting
	err  error
}

func (s stubSettings) List(context.Context) ([]*model.Setting, error) { return s.rows, s.err }

type stubSocial struct {
	rows []*model.SocialLink
	err  error
}

func (s stubSocial) List(context.Context) ([]*model.SocialLink, error) { return s.rows, s.err }

func testSiteCfg() config.SiteConfig {
	return config.SiteConfig{
		PublicStorageBaseURL: "https://cdn.marquee.test/storage",
		DefaultContactEmail:  "hello@marqueeevents.com",
		DefaultContactPhone:  "+1 (555) 010-4477",
		DefaultAddress:       "214 Garland Avenue, Portland, OR 97209",
		DefaultLogoURL:       "/static/img/marquee-logo.svg",
		PlaceholderMarkers:   []string{"123 Main Street", "Springfield", "00000", "example.com", "Your Company"},
	}
}

func newSiteConfig(settings settingsReader, social socialLinksReader) *SiteConfigService {
	return NewSiteConfigService(SiteConfigServiceOptions{
		Settings: settings,
		Social:   social,
		Config:   testSiteCfg(),
		Logger:   discardLogger(),
	})
}

func TestSiteConfigLoad_UsesStoredValues(t *testing.T) {
	svc := newSiteConfig(stubSettings{rows: []*model.Setting{
		{Key: model.SettingContactEmail, Value: "events@marquee.live"},
		{Key: model.SettingContactPhone, Value: "+1 (503) 555-0102"},
		{Key: model.SettingAddress, Value: "88 Alder Street, Portland, OR"},
		{Key: model.SettingHeroHeading, Value: "Unforgettable celebrations"},
	}}, stubSocial{})

	out := svc.Load(context.Background())

	assert.Equal(t, "events@marquee.live", out.ContactEmail)
	assert.Equal(t, "+1 (503) 555-0102", out.ContactPhone)
	assert.Equal(t, "88 Alder Street, Portland, OR", out.Address)
	assert.Equal(t, "Unforgettable celebrations", out.HeroHeading)
}

func TestSiteConfigLoad_PlaceholdersFallBackToDefaults(t *testing.T) {
	svc := newSiteConfig(stubSettings{rows: []*model.Setting{
		{Key: model.SettingContactEmail, Value: "info@example.com"},
		{Key: model.SettingAddress, Value: "Visit us at 123 Main Street, Springfield"},
		{Key: model.SettingContactPhone, Value: "   "},
	}}, stubSocial{})

	out := svc.Load(context.Background())

	assert.Equal(t, "hello@marqueeevents.com", out.ContactEmail)
	assert.Equal(t, "214 Garland Avenue, Portland, OR 97209", out.Address)
	assert.Equal(t, "+1 (555) 010-4477", out.ContactPhone)
}

func TestSiteConfigLoad_ReadFailureServesDefaults(t *testing.T) {
	svc := newSiteConfig(stubSettings{err: errors.New("db down")}, stubSocial{err: errors.New("db down")})

	out := svc.Load(context.Background())

	assert.Equal(t, "hello@marqueeevents.com", out.ContactEmail)
	assert.Equal(t, "/static/img/marquee-logo.svg", out.LogoURL)
	assert.Empty(t, out.Social)
}

func TestSiteConfigLoad_LogoPathResolution(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"empty uses default", "", "/static/img/marquee-logo.svg"},
		{"bare path joined with base", "branding/logo.png", "https://cdn.marquee.test/storage/branding/logo.png"},
		{"leading slash trimmed", "/branding/logo.png", "https://cdn.marquee.test/storage/branding/logo.png"},
		{"absolute URL passes through", "https://img.marquee.live/logo.png", "https://img.marquee.live/logo.png"},
		{"placeholder uses default", "https://example.com/logo.png", "/static/img/marquee-logo.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newSiteConfig(stubSettings{rows: []*model.Setting{
				{Key: model.SettingLogoPath, Value: tt.stored},
			}}, stubSocial{})
			assert.Equal(t, tt.want, svc.Load(context.Background()).LogoURL)
		})
	}
}

func TestSiteConfigLoad_SocialPlatformInference(t *testing.T) {
	svc := newSiteConfig(stubSettings{}, stubSocial{rows: []*model.SocialLink{
		{URL: "https://www.instagram.com/marqueeevents", Label: "Follow us"},
		{URL: "https://facebook.com/marqueeevents"},
		{URL: "https://www.pinterest.co.uk/marqueeevents"},
		{URL: "https://example.com/seed-link"},
	}})

	out := svc.Load(context.Background())

	require.Len(t, out.Social, 3, "placeholder links are dropped")
	assert.Equal(t, "instagram", out.Social[0].Platform)
	assert.Equal(t, "Follow us", out.Social[0].Label)
	assert.Equal(t, "facebook", out.Social[1].Platform)
	assert.Equal(t, "Facebook", out.Social[1].Label, "label defaults to capitalized platform")
	assert.Equal(t, "pinterest", out.Social[2].Platform, "country suffixes resolve to the registrable domain")
}

func TestSiteConfigLoad_ExplicitPlatformWins(t *testing.T) {
	svc := newSiteConfig(stubSettings{}, stubSocial{rows: []*model.SocialLink{
		{URL: "https://marquee.live/feed", Platform: "blog", Label: "Our Blog"},
	}})

	out := svc.Load(context.Background())
	require.Len(t, out.Social, 1)
	assert.Equal(t, "blog", out.Social[0].Platform)
}

func TestInferPlatform(t *testing.T) {
	assert.Equal(t, "instagram", inferPlatform("https://www.instagram.com/x"))
	assert.Equal(t, "tiktok", inferPlatform("https://vm.tiktok.com/x"))
	assert.Equal(t, "", inferPlatform("not a url"))
	assert.Equal(t, "", inferPlatform(""))
}
