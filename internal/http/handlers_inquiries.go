package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/marquee-events/marquee/internal/domain/model"
)

// inquirySubmitter is the public contact-form entry point, including
// webhook notification. The service implements it.
type inquirySubmitter interface {
	Submit(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error)
	Get(ctx context.Context, id string) (*model.Inquiry, error)
	List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*model.Inquiry, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.InquiryStats, error)
}

// InquiryHandlers serves the public contact form and the admin inbox.
type InquiryHandlers struct {
	Inquiries inquirySubmitter
	Logger    *slog.Logger
}

func (h *InquiryHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Submit handles POST /api/inquiries (public, unauthenticated).
func (h *InquiryHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInquiryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	inq, err := h.Inquiries.Submit(r.Context(), &req)
	if err != nil {
		h.logger().Error("inquiry submit failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"id": inq.ID, "created_at": inq.CreatedAt})
}

// List handles GET /api/admin/inquiries.
func (h *InquiryHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	items, err := h.Inquiries.List(r.Context(), limit, offset, r.URL.Query().Get("unread") == "true")
	if err != nil {
		h.logger().Error("inquiry list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"inquiries": items})
}

// Get handles GET /api/admin/inquiries/{id}.
func (h *InquiryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	inq, err := h.Inquiries.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, inq)
}

// MarkRead handles POST /api/admin/inquiries/{id}/read.
func (h *InquiryHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Inquiries.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/admin/inquiries/{id}.
func (h *InquiryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Inquiries.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/admin/inquiries/stats.
func (h *InquiryHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Inquiries.Stats(r.Context())
	if err != nil {
		h.logger().Error("inquiry stats failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
