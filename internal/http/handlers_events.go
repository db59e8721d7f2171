package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/domain/model"
)

// eventStore is the slice of the event repository the handlers need.
type eventStore interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventHandlers serves the public event listing and the admin event CRUD.
type EventHandlers struct {
	Events eventStore
	Logger *slog.Logger
}

func (h *EventHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func listParams(r *http.Request) (limit, offset int) {
	limit = defaultListLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxListLimit)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// PublicList handles GET /api/events. Anonymous callers see published
// events only; a request carrying a back-office session also gets drafts.
func (h *EventHandlers) PublicList(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	_, staff := GetUserSessionFromContext(r.Context())
	opts := model.EventsListOptions{
		Limit:         limit,
		Offset:        offset,
		PublishedOnly: !staff,
		UpcomingOnly:  r.URL.Query().Get("upcoming") == "true",
		Sort:          "event_date",
		Dir:           "asc",
	}
	events, err := h.Events.List(r.Context(), opts)
	if err != nil {
		h.logger().Error("event list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// PublicGet handles GET /api/events/{id}. Unpublished events 404 unless
// the request carries a back-office session.
func (h *EventHandlers) PublicGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.Events.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if _, staff := GetUserSessionFromContext(r.Context()); !event.Published && !staff {
		writeStoreError(w, data.ErrEventNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// List handles GET /api/admin/events.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	q := r.URL.Query()
	opts := model.EventsListOptions{
		Limit:         limit,
		Offset:        offset,
		PublishedOnly: q.Get("published") == "true",
		UpcomingOnly:  q.Get("upcoming") == "true",
		Sort:          q.Get("sort"),
		Dir:           q.Get("dir"),
	}
	events, err := h.Events.List(r.Context(), opts)
	if err != nil {
		h.logger().Error("event list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Get handles GET /api/admin/events/{id}.
func (h *EventHandlers) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.Events.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Create handles POST /api/admin/events.
func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	event, err := h.Events.Create(r.Context(), &req)
	if err != nil {
		h.logger().Error("event create failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, event)
}

// Update handles PATCH /api/admin/events/{id}.
func (h *EventHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	event, err := h.Events.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/admin/events/{id}.
func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Events.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps repository errors onto HTTP responses. Not-found
// sentinels become 404s; anything else is a 500 with a generic message so
// database details never leak to clients.
func writeStoreError(w http.ResponseWriter, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: sentinel})
			return
		}
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("internal error"),
	})
}

var notFoundErrors = []error{
	data.ErrEventNotFound,
	data.ErrAlbumNotFound,
	data.ErrImageNotFound,
	data.ErrOfferingNotFound,
	data.ErrTeamMemberNotFound,
	data.ErrTestimonialNotFound,
	data.ErrInquiryNotFound,
	data.ErrSocialLinkNotFound,
	data.ErrSettingNotFound,
	data.ErrAdminUserNotFound,
}
