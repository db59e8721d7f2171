package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/http/uiutil"
)

// activityWindow bounds how far back the recent-activity feed reaches.
const activityWindow = 30 * 24 * time.Hour

// activityTitleLimit caps feed titles so one long event name cannot distort
// the admin dashboard layout.
const activityTitleLimit = 80

// eventStatsRepo is the slice of the event repository the dashboard needs.
type eventStatsRepo interface {
	Count(ctx context.Context, publishedOnly bool) (int, error)
	RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Event, error)
}

type albumStatsRepo interface {
	Count(ctx context.Context, publishedOnly bool) (int, error)
	RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Album, error)
}

type galleryCounter interface {
	Count(ctx context.Context) (int, error)
}

type inquiryStatsRepo interface {
	Stats(ctx context.Context) (*model.InquiryStats, error)
	RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Inquiry, error)
}

type testimonialActivityRepo interface {
	RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Testimonial, error)
}

// DashboardRepos groups the read-side repositories the dashboard aggregates.
type DashboardRepos struct {
	Events       eventStatsRepo
	Albums       albumStatsRepo
	Gallery      galleryCounter
	Inquiries    inquiryStatsRepo
	Testimonials testimonialActivityRepo
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Repos        DashboardRepos
	TimeProvider data.TimeProvider
	Logger       *slog.Logger
}

// DashboardService aggregates entity counts and a merged recent-activity
// feed for the back-office landing page. Every read is independent: a failed
// or missing section degrades to zero values and the rest still renders.
type DashboardService struct {
	repos  DashboardRepos
	tp     data.TimeProvider
	logger *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.TimeProvider == nil {
		opts.TimeProvider = &data.RealTimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &DashboardService{repos: opts.Repos, tp: opts.TimeProvider, logger: opts.Logger}
}

// EntityCount pairs a total with its published subset.
type EntityCount struct {
	Total     int `json:"total"`
	Published int `json:"published"`
}

// DashboardOverview is the aggregated dashboard view-model.
type DashboardOverview struct {
	Events        EntityCount          `json:"events"`
	Albums        EntityCount          `json:"albums"`
	GalleryImages int                  `json:"gallery_images"`
	Inquiries     model.InquiryStats   `json:"inquiries"`
	Activity      []model.ActivityItem `json:"activity"`
}

// Overview fans out all dashboard reads concurrently and assembles the
// result. It never returns an error; sections that fail are logged and left
// at their zero values.
func (s *DashboardService) Overview(ctx context.Context, activityLimit int) *DashboardOverview {
	out := &DashboardOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Events = s.countEntity(gctx, "events", s.repos.Events.Count)
		return nil
	})
	g.Go(func() error {
		out.Albums = s.countEntity(gctx, "albums", s.repos.Albums.Count)
		return nil
	})
	g.Go(func() error {
		n, err := s.repos.Gallery.Count(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "dashboard gallery count failed", "error", err)
			return nil
		}
		out.GalleryImages = n
		return nil
	})
	g.Go(func() error {
		stats, err := s.repos.Inquiries.Stats(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "dashboard inquiry stats failed", "error", err)
			return nil
		}
		out.Inquiries = *stats
		return nil
	})
	g.Go(func() error {
		out.Activity = s.RecentActivity(gctx, activityLimit)
		return nil
	})
	_ = g.Wait()

	return out
}

func (s *DashboardService) countEntity(ctx context.Context, name string, count func(context.Context, bool) (int, error)) EntityCount {
	var ec EntityCount
	total, err := count(ctx, false)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard count failed", "entity", name, "error", err)
		return ec
	}
	ec.Total = total
	published, err := count(ctx, true)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard published count failed", "entity", name, "error", err)
		return ec
	}
	ec.Published = published
	return ec
}

// RecentActivity merges recent events, albums, inquiries, and testimonials
// into one feed sorted newest first and truncated to limit. Each source is
// fetched independently; a failed source contributes nothing.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) []model.ActivityItem {
	if limit <= 0 {
		limit = 10
	}
	cutoff := s.tp.Now().Add(-activityWindow)

	items := make([]model.ActivityItem, 0, 4*limit)

	if events, err := s.repos.Events.RecentSince(ctx, cutoff, limit); err != nil {
		s.logger.WarnContext(ctx, "recent events fetch failed", "error", err)
	} else {
		for _, e := range events {
			items = append(items, model.ActivityItem{
				Kind:       model.ActivityKindEvent,
				ID:         e.ID,
				Title:      e.Title,
				OccurredAt: e.CreatedAt,
			})
		}
	}

	if albums, err := s.repos.Albums.RecentSince(ctx, cutoff, limit); err != nil {
		s.logger.WarnContext(ctx, "recent albums fetch failed", "error", err)
	} else {
		for _, a := range albums {
			items = append(items, model.ActivityItem{
				Kind:       model.ActivityKindAlbum,
				ID:         a.ID,
				Title:      a.Title,
				OccurredAt: a.CreatedAt,
			})
		}
	}

	if inquiries, err := s.repos.Inquiries.RecentSince(ctx, cutoff, limit); err != nil {
		s.logger.WarnContext(ctx, "recent inquiries fetch failed", "error", err)
	} else {
		for _, q := range inquiries {
			items = append(items, model.ActivityItem{
				Kind:       model.ActivityKindInquiry,
				ID:         q.ID,
				Title:      "Inquiry from " + q.Name,
				OccurredAt: q.CreatedAt,
			})
		}
	}

	if testimonials, err := s.repos.Testimonials.RecentSince(ctx, cutoff, limit); err != nil {
		s.logger.WarnContext(ctx, "recent testimonials fetch failed", "error", err)
	} else {
		for _, tm := range testimonials {
			items = append(items, model.ActivityItem{
				Kind:       model.ActivityKindTestimonial,
				ID:         tm.ID,
				Title:      "Testimonial from " + tm.Author,
				OccurredAt: tm.CreatedAt,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	now := s.tp.Now()
	for i := range items {
		items[i].Title = uiutil.TruncateWithEllipsis(items[i].Title, activityTitleLimit)
		items[i].TimeAgo = uiutil.FriendlyRelativeTimeAt(items[i].OccurredAt, now)
	}
	return items
}
