// Package devseed populates a development database with sample content:
// events, an album with images, offerings, team members, testimonials,
// social links and starter settings.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/util"
)

// Services bundles the repositories needed for development seeding.
type Services struct {
	DB           *sql.DB
	events       *data.EventRepo
	albums       *data.AlbumRepo
	images       *data.GalleryImageRepo
	offerings    *data.OfferingRepo
	team         *data.TeamRepo
	testimonials *data.TestimonialRepo
	social       *data.SocialLinkRepo
	settings     *data.SettingsRepo
	admins       *data.AdminUserRepo
}

// NewServices constructs all required repositories for seeding.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:           db,
		events:       data.NewEventRepo(db),
		albums:       data.NewAlbumRepo(db),
		images:       data.NewGalleryImageRepo(db),
		offerings:    data.NewOfferingRepo(db),
		team:         data.NewTeamRepo(db),
		testimonials: data.NewTestimonialRepo(db),
		social:       data.NewSocialLinkRepo(db),
		settings:     data.NewSettingsRepo(db),
		admins:       data.NewAdminUserRepo(db),
	}
}

// Run executes the full development seeding workflow. Seeding is skipped
// when published events already exist, so it is safe to re-run.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	count, err := svcs.events.Count(ctx, false)
	if err != nil {
		return fmt.Errorf("check existing events: %w", err)
	}
	if count > 0 {
		logger.Info("development data already present, skipping seed", "events", count)
		return nil
	}

	steps := []struct {
		name string
		fn   func(context.Context, Services, *slog.Logger) error
	}{
		{"events and gallery", seedEventsAndGallery},
		{"offerings", seedOfferings},
		{"team", seedTeam},
		{"testimonials", seedTestimonials},
		{"social links", seedSocialLinks},
		{"settings", seedSettings},
		{"admin user", seedAdminUser},
	}

	for _, step := range steps {
		if err := step.fn(ctx, svcs, logger); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		logger.Info("seeded", "step", step.name)
	}
	return nil
}

func seedEventsAndGallery(ctx context.Context, svcs Services, _ *slog.Logger) error {
	gala, err := svcs.events.Create(ctx, &model.CreateEventRequest{
		Title:       "Winter Charity Gala",
		Description: "Black-tie fundraiser with live orchestra and a silent auction.",
		Location:    "Grand Ballroom, Hotel Meridian",
		EventDate:   util.Ptr(time.Now().AddDate(0, 2, 0)),
		Published:   util.Ptr(true),
	})
	if err != nil {
		return err
	}

	if _, err = svcs.events.Create(ctx, &model.CreateEventRequest{
		Title:       "Tech Summit After-Party",
		Description: "Rooftop networking event for two hundred guests.",
		Location:    "Skyline Terrace",
		EventDate:   util.Ptr(time.Now().AddDate(0, 1, 12)),
		Published:   util.Ptr(true),
	}); err != nil {
		return err
	}

	// One draft so the admin list shows unpublished state.
	if _, err = svcs.events.Create(ctx, &model.CreateEventRequest{
		Title:       "Private Anniversary Dinner",
		Description: "Fifty-guest dinner, menu under discussion.",
		Location:    "TBD",
	}); err != nil {
		return err
	}

	album, err := svcs.albums.Create(ctx, &model.CreateAlbumRequest{
		Title:       "Gala Highlights",
		Description: "Photos from last season's charity gala.",
		EventID:     &gala.ID,
		Published:   util.Ptr(true),
	})
	if err != nil {
		return err
	}

	for i, caption := range []string{"Arrival", "First dance", "Auction floor"} {
		if _, err = svcs.images.Add(ctx, &model.AddGalleryImageRequest{
			AlbumID:     album.ID,
			StoragePath: fmt.Sprintf("gallery/gala/%02d.jpg", i+1),
			Caption:     caption,
			SortOrder:   i,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedOfferings(ctx context.Context, svcs Services, _ *slog.Logger) error {
	offerings := []model.Offering{
		{Name: "Weddings", Description: "Full-service wedding planning and coordination.", SortOrder: 1, Active: true},
		{Name: "Corporate Events", Description: "Conferences, launches and team off-sites.", SortOrder: 2, Active: true},
		{Name: "Private Parties", Description: "Birthdays, anniversaries and intimate dinners.", SortOrder: 3, Active: true},
	}
	for i := range offerings {
		if _, err := svcs.offerings.Create(ctx, &offerings[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedTeam(ctx context.Context, svcs Services, _ *slog.Logger) error {
	members := []model.TeamMember{
		{Name: "Dana Whitfield", Title: "Founder & Lead Planner", Bio: "Fifteen years of large-scale event production.", SortOrder: 1, Active: true},
		{Name: "Marco Iglesias", Title: "Creative Director", Bio: "Designs the look and feel of every event.", SortOrder: 2, Active: true},
	}
	for i := range members {
		if _, err := svcs.team.Create(ctx, &members[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedTestimonials(ctx context.Context, svcs Services, _ *slog.Logger) error {
	eventName := "Winter Charity Gala"
	approved := model.Testimonial{
		Author:    "R. Okafor",
		Quote:     "Every detail handled before we even asked. Flawless night.",
		EventName: &eventName,
		Approved:  true,
	}
	if _, err := svcs.testimonials.Create(ctx, &approved); err != nil {
		return err
	}
	if approved.Approved {
		if err := svcs.testimonials.SetApproved(ctx, approved.ID, true); err != nil {
			return err
		}
	}

	pending := model.Testimonial{
		Author: "J. Meyer",
		Quote:  "Our product launch ran to the minute.",
	}
	_, err := svcs.testimonials.Create(ctx, &pending)
	return err
}

func seedSocialLinks(ctx context.Context, svcs Services, _ *slog.Logger) error {
	links := []model.SocialLink{
		{URL: "https://instagram.com/marqueeevents", Label: "Instagram", SortOrder: 1},
		{URL: "https://facebook.com/marqueeevents", Label: "Facebook", SortOrder: 2},
	}
	for i := range links {
		if _, err := svcs.social.Create(ctx, &links[i]); err != nil {
			return err
		}
	}
	return nil
}

// seedSettings intentionally writes placeholder contact values so the
// public aggregator's default fallback is exercised in development.
func seedSettings(ctx context.Context, svcs Services, _ *slog.Logger) error {
	settings := map[string]string{
		model.SettingContactEmail: "info@example.com",
		model.SettingAddress:      "123 Main Street, Springfield",
		model.SettingHeroHeading:  "Events worth remembering",
		model.SettingHeroSubtext:  "Planning and production for celebrations of every size.",
		model.SettingAboutText:    "Marquee Events has produced weddings, galas and corporate events since 2011.",
	}
	for key, value := range settings {
		if _, err := svcs.settings.Upsert(ctx, &model.UpsertSettingRequest{Key: key, Value: value}); err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, svcs Services, _ *slog.Logger) error {
	_, err := svcs.admins.Create(ctx, &model.AdminUser{
		AuthID:      "dev-user",
		Email:       "dev@marquee.local",
		DisplayName: "Dev Admin",
		Role:        "admin",
	})
	return err
}
