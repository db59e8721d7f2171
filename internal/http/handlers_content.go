package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/marquee-events/marquee/internal/domain/model"
)

type offeringStore interface {
	Create(ctx context.Context, o *model.Offering) (*model.Offering, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Offering, error)
	Update(ctx context.Context, o *model.Offering) (*model.Offering, error)
	Delete(ctx context.Context, id string) error
}

type teamStore interface {
	Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	List(ctx context.Context, activeOnly bool) ([]*model.TeamMember, error)
	Update(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type testimonialStore interface {
	Create(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error)
	List(ctx context.Context, limit int, approvedOnly bool) ([]*model.Testimonial, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

type socialLinkStore interface {
	Create(ctx context.Context, l *model.SocialLink) (*model.SocialLink, error)
	List(ctx context.Context) ([]*model.SocialLink, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandlers serves the curated marketing content: offerings, team
// members, testimonials and social links.
type ContentHandlers struct {
	Offerings    offeringStore
	Team         teamStore
	Testimonials testimonialStore
	SocialLinks  socialLinkStore
	Logger       *slog.Logger
}

func (h *ContentHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

const publicTestimonialLimit = 50

// Offerings

func (h *ContentHandlers) PublicOfferings(w http.ResponseWriter, r *http.Request) {
	items, err := h.Offerings.List(r.Context(), true)
	if err != nil {
		h.logger().Error("offering list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"offerings": items})
}

func (h *ContentHandlers) ListOfferings(w http.ResponseWriter, r *http.Request) {
	items, err := h.Offerings.List(r.Context(), false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"offerings": items})
}

func (h *ContentHandlers) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var o model.Offering
	if !DecodeJSON(w, r, &o) {
		return
	}
	if err := o.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	created, err := h.Offerings.Create(r.Context(), &o)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *ContentHandlers) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	var o model.Offering
	if !DecodeJSON(w, r, &o) {
		return
	}
	o.ID = r.PathValue("id")
	if err := o.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	updated, err := h.Offerings.Update(r.Context(), &o)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	if err := h.Offerings.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Team members

func (h *ContentHandlers) PublicTeam(w http.ResponseWriter, r *http.Request) {
	items, err := h.Team.List(r.Context(), true)
	if err != nil {
		h.logger().Error("team list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"team": items})
}

func (h *ContentHandlers) ListTeam(w http.ResponseWriter, r *http.Request) {
	items, err := h.Team.List(r.Context(), false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"team": items})
}

func (h *ContentHandlers) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var m model.TeamMember
	if !DecodeJSON(w, r, &m) {
		return
	}
	if err := m.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	created, err := h.Team.Create(r.Context(), &m)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *ContentHandlers) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	var m model.TeamMember
	if !DecodeJSON(w, r, &m) {
		return
	}
	m.ID = r.PathValue("id")
	if err := m.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	updated, err := h.Team.Update(r.Context(), &m)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Team.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Testimonials

func (h *ContentHandlers) PublicTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.Testimonials.List(r.Context(), publicTestimonialLimit, true)
	if err != nil {
		h.logger().Error("testimonial list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"testimonials": items})
}

func (h *ContentHandlers) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	limit, _ := listParams(r)
	items, err := h.Testimonials.List(r.Context(), limit, r.URL.Query().Get("approved") == "true")
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"testimonials": items})
}

func (h *ContentHandlers) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var t model.Testimonial
	if !DecodeJSON(w, r, &t) {
		return
	}
	if err := t.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	created, err := h.Testimonials.Create(r.Context(), &t)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type approveRequest struct {
	Approved bool `json:"approved"`
}

func (h *ContentHandlers) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Testimonials.SetApproved(r.Context(), r.PathValue("id"), req.Approved); err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

func (h *ContentHandlers) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.Testimonials.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Social links

func (h *ContentHandlers) ListSocialLinks(w http.ResponseWriter, r *http.Request) {
	items, err := h.SocialLinks.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"social_links": items})
}

func (h *ContentHandlers) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	var l model.SocialLink
	if !DecodeJSON(w, r, &l) {
		return
	}
	if err := l.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	created, err := h.SocialLinks.Create(r.Context(), &l)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *ContentHandlers) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	if err := h.SocialLinks.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
