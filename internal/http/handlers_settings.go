package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/service"
)

type settingsStore interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]*model.Setting, error)
	Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.Setting, error)
	Delete(ctx context.Context, key string) error
}

type siteConfigLoader interface {
	Load(ctx context.Context) *service.PublicSiteConfig
}

// SettingsHandlers serves the admin settings store and the public
// aggregated site configuration.
type SettingsHandlers struct {
	Settings   settingsStore
	SiteConfig siteConfigLoader
	Logger     *slog.Logger
}

func (h *SettingsHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PublicSiteConfig handles GET /api/site-config. The aggregate degrades
// per-section on storage failure, so this endpoint always answers 200.
func (h *SettingsHandlers) PublicSiteConfig(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.SiteConfig.Load(r.Context()))
}

// List handles GET /api/admin/settings.
func (h *SettingsHandlers) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.List(r.Context())
	if err != nil {
		h.logger().Error("settings list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// Get handles GET /api/admin/settings/{key}.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Settings.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, setting)
}

// Upsert handles PUT /api/admin/settings/{key}.
func (h *SettingsHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertSettingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Key = r.PathValue("key")
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	setting, err := h.Settings.Upsert(r.Context(), &req)
	if err != nil {
		h.logger().Error("setting upsert failed", "key", req.Key, "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, setting)
}

// Delete handles DELETE /api/admin/settings/{key}.
func (h *SettingsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Settings.Delete(r.Context(), r.PathValue("key")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
