package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/marquee-events/marquee/internal/service"
)

type dashboardLoader interface {
	Overview(ctx context.Context, activityLimit int) *service.DashboardOverview
}

// DashboardHandlers serves the back-office landing aggregate.
type DashboardHandlers struct {
	Dashboard dashboardLoader
}

const defaultActivityLimit = 10

// Overview handles GET /api/admin/dashboard. Sections degrade
// individually, so the endpoint always answers 200.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("activity_limit")); err == nil && v > 0 {
		limit = min(v, maxListLimit)
	}
	WriteJSON(w, http.StatusOK, h.Dashboard.Overview(r.Context(), limit))
}
