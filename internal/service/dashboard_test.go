package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/domain/model"
)

type stubEventStats struct {
	total, published int
	countErr         error
	recent           []*model.Event
	recentErr        error
}

func (s stubEventStats) Count(_ context.Context, publishedOnly bool) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	if publishedOnly {
		return s.published, nil
	}
	return s.total, nil
}

func (s stubEventStats) RecentSince(context.Context, time.Time, int) ([]*model.Event, error) {
	return s.recent, s.recentErr
}

type stubAlbumStats struct {
	total, published int
	recent           []*model.Album
}

func (s stubAlbumStats) Count(_ context.Context, publishedOnly bool) (int, error) {
	if publishedOnly {
		return s.published, nil
	}
	return s.total, nil
}

func (s stubAlbumStats) RecentSince(context.Context, time.Time, int) ([]*model.Album, error) {
	return s.recent, nil
}

type stubGallery struct {
	n   int
	err error
}

func (s stubGallery) Count(context.Context) (int, error) { return s.n, s.err }

type stubInquiryStats struct {
	stats    *model.InquiryStats
	statsErr error
	recent   []*model.Inquiry
}

func (s stubInquiryStats) Stats(context.Context) (*model.InquiryStats, error) {
	return s.stats, s.statsErr
}

func (s stubInquiryStats) RecentSince(context.Context, time.Time, int) ([]*model.Inquiry, error) {
	return s.recent, nil
}

type stubTestimonials struct {
	recent []*model.Testimonial
	err    error
}

func (s stubTestimonials) RecentSince(context.Context, time.Time, int) ([]*model.Testimonial, error) {
	return s.recent, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDashboard(repos DashboardRepos) *DashboardService {
	return NewDashboardService(DashboardServiceOptions{
		Repos:        repos,
		TimeProvider: data.NewFixedTimeProvider(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)),
		Logger:       discardLogger(),
	})
}

func TestDashboardOverview_AggregatesCounts(t *testing.T) {
	svc := newDashboard(DashboardRepos{
		Events:       stubEventStats{total: 12, published: 9},
		Albums:       stubAlbumStats{total: 5, published: 4},
		Gallery:      stubGallery{n: 80},
		Inquiries:    stubInquiryStats{stats: &model.InquiryStats{Total: 31, ThisMonth: 4, Unread: 2}},
		Testimonials: stubTestimonials{},
	})

	out := svc.Overview(context.Background(), 10)

	assert.Equal(t, EntityCount{Total: 12, Published: 9}, out.Events)
	assert.Equal(t, EntityCount{Total: 5, Published: 4}, out.Albums)
	assert.Equal(t, 80, out.GalleryImages)
	assert.Equal(t, model.InquiryStats{Total: 31, ThisMonth: 4, Unread: 2}, out.Inquiries)
}

func TestDashboardOverview_PartialFailureDegradesToZero(t *testing.T) {
	svc := newDashboard(DashboardRepos{
		Events:       stubEventStats{countErr: errors.New("db down")},
		Albums:       stubAlbumStats{total: 5, published: 4},
		Gallery:      stubGallery{err: errors.New("db down")},
		Inquiries:    stubInquiryStats{statsErr: errors.New("db down")},
		Testimonials: stubTestimonials{err: errors.New("db down")},
	})

	out := svc.Overview(context.Background(), 10)

	// Failed sections degrade; healthy ones still report.
	assert.Zero(t, out.Events)
	assert.Zero(t, out.GalleryImages)
	assert.Zero(t, out.Inquiries)
	assert.Equal(t, EntityCount{Total: 5, Published: 4}, out.Albums)
}

func TestRecentActivity_MergesAndSortsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := newDashboard(DashboardRepos{
		Events: stubEventStats{recent: []*model.Event{
			{ID: "e1", Title: "Garden Gala", CreatedAt: base.Add(3 * time.Hour)},
		}},
		Albums: stubAlbumStats{recent: []*model.Album{
			{ID: "a1", Title: "Gala Photos", CreatedAt: base.Add(1 * time.Hour)},
		}},
		Gallery: stubGallery{},
		Inquiries: stubInquiryStats{recent: []*model.Inquiry{
			{ID: "q1", Name: "Dana", CreatedAt: base.Add(4 * time.Hour)},
		}},
		Testimonials: stubTestimonials{recent: []*model.Testimonial{
			{ID: "t1", Author: "Sam", CreatedAt: base.Add(2 * time.Hour)},
		}},
	})

	items := svc.RecentActivity(context.Background(), 10)

	require.Len(t, items, 4)
	assert.Equal(t, model.ActivityKindInquiry, items[0].Kind)
	assert.Equal(t, "Inquiry from Dana", items[0].Title)
	assert.Equal(t, "Garden Gala", items[1].Title)
	assert.Equal(t, "Testimonial from Sam", items[2].Title)
	assert.Equal(t, "Gala Photos", items[3].Title)
	assert.NotEmpty(t, items[0].TimeAgo)
}

func TestRecentActivity_TruncatesToLimit(t *testing.T) {
	base := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	events := make([]*model.Event, 5)
	for i := range events {
		events[i] = &model.Event{ID: "e", Title: "Event", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	svc := newDashboard(DashboardRepos{
		Events:       stubEventStats{recent: events},
		Albums:       stubAlbumStats{},
		Gallery:      stubGallery{},
		Inquiries:    stubInquiryStats{stats: &model.InquiryStats{}},
		Testimonials: stubTestimonials{},
	})

	items := svc.RecentActivity(context.Background(), 3)
	assert.Len(t, items, 3)
}

func TestRecentActivity_FailedSourceContributesNothing(t *testing.T) {
	base := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := newDashboard(DashboardRepos{
		Events: stubEventStats{recentErr: errors.New("timeout")},
		Albums: stubAlbumStats{recent: []*model.Album{
			{ID: "a1", Title: "Spring Set", CreatedAt: base},
		}},
		Gallery:      stubGallery{},
		Inquiries:    stubInquiryStats{},
		Testimonials: stubTestimonials{},
	})

	items := svc.RecentActivity(context.Background(), 10)
	require.Len(t, items, 1)
	assert.Equal(t, model.ActivityKindAlbum, items[0].Kind)
}
