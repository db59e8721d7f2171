package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marquee-events/marquee/internal/domain/model"
)

type inquiryRepo interface {
	Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error)
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*model.Inquiry, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.InquiryStats, error)
}

// InquiryNotifier delivers a notification for a newly submitted inquiry.
type InquiryNotifier interface {
	Notify(ctx context.Context, inq *model.Inquiry) error
}

// InquiryServiceOptions groups dependencies for InquiryService.
type InquiryServiceOptions struct {
	Repo     inquiryRepo
	Notifier InquiryNotifier // Optional: nil disables notifications
	Logger   *slog.Logger
}

// InquiryService handles contact-form submissions and their back-office
// lifecycle. Notification delivery is best effort: a failed webhook never
// loses the stored inquiry.
type InquiryService struct {
	repo     inquiryRepo
	notifier InquiryNotifier
	logger   *slog.Logger
}

// NewInquiryService constructs a new InquiryService.
func NewInquiryService(opts InquiryServiceOptions) *InquiryService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &InquiryService{repo: opts.Repo, notifier: opts.Notifier, logger: opts.Logger}
}

// Submit validates and stores a public contact-form submission, then fires
// the notification webhook if one is configured.
func (s *InquiryService) Submit(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	inq, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("store inquiry: %w", err)
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, inq); err != nil {
			s.logger.WarnContext(ctx, "inquiry notification failed",
				"inquiry_id", inq.ID, "error", err)
		}
	}
	return inq, nil
}

// Get returns one inquiry by id.
func (s *InquiryService) Get(ctx context.Context, id string) (*model.Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns inquiries newest first, optionally unread only.
func (s *InquiryService) List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*model.Inquiry, error) {
	return s.repo.List(ctx, limit, offset, unreadOnly)
}

// MarkRead flags an inquiry as read.
func (s *InquiryService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns inquiry counters for the dashboard.
func (s *InquiryService) Stats(ctx context.Context) (*model.InquiryStats, error) {
	return s.repo.Stats(ctx)
}
