package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/domain/model"
)

type adminUserStore interface {
	Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)
	List(ctx context.Context) ([]*model.AdminUser, error)
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}

// AdminUserHandlers manages back-office account provisioning. All routes
// require the admin role; moderators cannot reach them.
type AdminUserHandlers struct {
	Users  adminUserStore
	Logger *slog.Logger
}

func (h *AdminUserHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func validRole(role string) bool {
	switch domainauth.Role(role) {
	case domainauth.RoleAdmin, domainauth.RoleModerator:
		return true
	}
	return false
}

// List handles GET /api/admin/users.
func (h *AdminUserHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.logger().Error("admin user list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Create handles POST /api/admin/users, provisioning a new account for an
// existing credential-provider user.
func (h *AdminUserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var u model.AdminUser
	if !DecodeJSON(w, r, &u) {
		return
	}
	if !validRole(u.Role) {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("role must be admin or moderator"),
		})
		return
	}
	created, err := h.Users.Create(r.Context(), &u)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserExists) {
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_exists", Err: err})
			return
		}
		h.logger().Error("admin user create failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PATCH /api/admin/users/{id}/role.
func (h *AdminUserHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !validRole(req.Role) {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("role must be admin or moderator"),
		})
		return
	}
	if err := h.Users.UpdateRole(r.Context(), r.PathValue("id"), req.Role); err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"role": req.Role})
}

// Delete handles DELETE /api/admin/users/{id}. The caller cannot delete
// their own account.
func (h *AdminUserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if sess := GetSessionFromContext(r.Context()); sess != nil && sess.Identity.ID == id {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("cannot delete your own account"),
		})
		return
	}
	if err := h.Users.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
