package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
	"github.com/marquee-events/marquee/internal/session"
)

const (
	oauthStateCookie = "oauth_state"
	oauthNonceCookie = "oauth_nonce"

	oauthCookieTTL = 10 * time.Minute
)

// AuthHandlers serves the login, logout and session endpoints. SSO is
// optional and the related handlers respond 404 when no provider is
// configured.
type AuthHandlers struct {
	Manager          *session.Manager
	SSO              ports.SSOProvider
	BaseURL          string
	CookieDomain     string
	VerifyRedirectTo string
	Logger           *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, id string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Fallback    bool   `json:"fallback,omitempty"`
}

type loginResponse struct {
	Success           bool         `json:"success"`
	NeedsVerification bool         `json:"needs_verification,omitempty"`
	Message           string       `json:"message,omitempty"`
	User              *userPayload `json:"user,omitempty"`
	ExpiresAt         *time.Time   `json:"expires_at,omitempty"`
}

func identityPayload(id domainauth.Identity) *userPayload {
	return &userPayload{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        string(id.Role),
		AvatarURL:   id.AvatarURL,
		Fallback:    id.Fallback,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	res := h.Manager.Login(r.Context(), req.Email, req.Password)
	h.writeLoginResult(w, r, res)
}

func (h *AuthHandlers) writeLoginResult(w http.ResponseWriter, r *http.Request, res session.LoginResult) {
	if !res.Success {
		WriteJSON(w, http.StatusUnauthorized, loginResponse{
			NeedsVerification: res.NeedsVerification,
			Message:           res.Message,
		})
		return
	}

	sess := res.Session
	h.setSessionCookie(w, r, sess.ID, sess.ExpiresAt)
	WriteJSON(w, http.StatusOK, loginResponse{
		Success:   true,
		User:      identityPayload(sess.Identity),
		ExpiresAt: &sess.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout. It is idempotent: a missing or
// stale cookie still yields a 200 and a cleared cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if c, err := r.Cookie(SessionCookieName); err == nil {
		sessionID = c.Value
	}
	h.Manager.Logout(r.Context(), sessionID)
	h.clearCookie(w, r, SessionCookieName)
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading,omitempty"`
	TokenConsumed bool         `json:"token_consumed,omitempty"`
	User          *userPayload `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

// Session handles GET /api/auth/session. A valid session cookie answers
// directly; otherwise the auth provider is consulted, consuming any
// verification tokens passed in the query string first. When provider
// resolution yields an identity a fresh server session is established so
// the e-mail verification landing flow ends signed in.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		if sess, err := h.Manager.GetSession(r.Context(), c.Value); err == nil {
			WriteJSON(w, http.StatusOK, sessionResponse{
				Authenticated: true,
				User:          identityPayload(sess.Identity),
				ExpiresAt:     &sess.ExpiresAt,
			})
			return
		}
		h.clearCookie(w, r, SessionCookieName)
	}

	q := r.URL.Query()
	res := h.Manager.Resolve(r.Context(), session.ResolveInput{
		VerificationAccessToken:  q.Get("access_token"),
		VerificationRefreshToken: q.Get("refresh_token"),
	})
	if res.Identity == nil {
		WriteJSON(w, http.StatusOK, sessionResponse{TokenConsumed: res.TokenConsumed})
		return
	}

	sess, err := h.Manager.EstablishSession(r.Context(), *res.Identity)
	if err != nil {
		h.logger().Error("session establish failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "session_error",
			Err:     errors.New("could not establish session"),
		})
		return
	}
	h.setSessionCookie(w, r, sess.ID, sess.ExpiresAt)
	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		TokenConsumed: res.TokenConsumed,
		User:          identityPayload(sess.Identity),
		ExpiresAt:     &sess.ExpiresAt,
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendVerification handles POST /api/auth/resend.
func (h *AuthHandlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("email is required"),
		})
		return
	}
	if err := h.Manager.ResendVerification(r.Context(), req.Email, h.VerifyRedirectTo); err != nil {
		h.logger().Warn("verification resend failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "resend_failed",
			Err:     errors.New("could not resend verification e-mail"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Reconcile handles POST /api/auth/reconcile, re-checking provider state
// when the client suspects it drifted (tab refocus, network recovery).
func (h *AuthHandlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	h.Manager.Reconcile(r.Context())
	snap := h.Manager.Snapshot()
	resp := sessionResponse{Authenticated: snap.Authenticated(), Loading: snap.Loading}
	if snap.Identity != nil {
		resp.User = identityPayload(*snap.Identity)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// SSOLogin handles GET /api/auth/sso/login: it stashes the state and nonce
// in short-lived cookies and redirects to the identity provider.
func (h *AuthHandlers) SSOLogin(w http.ResponseWriter, r *http.Request) {
	if h.SSO == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "sso_not_configured",
			Err:     errors.New("sso is not configured"),
		})
		return
	}
	authURL, state, nonce, err := h.SSO.Begin(r.Context(), ports.BeginInput{RedirectURL: h.ssoCallbackURL()})
	if err != nil {
		h.logger().Error("sso begin failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "sso_begin_failed",
			Err:     errors.New("could not start sign-in"),
		})
		return
	}
	h.setOAuthCookie(w, r, oauthStateCookie, state)
	h.setOAuthCookie(w, r, oauthNonceCookie, nonce)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// SSOCallback handles GET /api/auth/sso/callback.
func (h *AuthHandlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	if h.SSO == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "sso_not_configured",
			Err:     errors.New("sso is not configured"),
		})
		return
	}
	q := r.URL.Query()
	if errCode := q.Get("error"); errCode != "" {
		h.logger().Warn("sso callback returned error", "code", errCode)
		h.redirectWithError(w, r, "sign-in was cancelled")
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != q.Get("state") {
		h.redirectWithError(w, r, "sign-in state mismatch, please retry")
		return
	}
	var nonce string
	if c, err := r.Cookie(oauthNonceCookie); err == nil {
		nonce = c.Value
	}
	h.clearCookie(w, r, oauthStateCookie)
	h.clearCookie(w, r, oauthNonceCookie)

	cred, err := h.SSO.Exchange(r.Context(), ports.ExchangeInput{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Nonce: nonce,
	})
	if err != nil {
		h.logger().Warn("sso exchange failed", "error", err)
		h.redirectWithError(w, r, "sign-in failed, please retry")
		return
	}

	res := h.Manager.LoginWithCredential(r.Context(), cred)
	if !res.Success {
		h.redirectWithError(w, r, res.Message)
		return
	}
	h.setSessionCookie(w, r, res.Session.ID, res.Session.ExpiresAt)
	http.Redirect(w, r, h.adminURL(""), http.StatusFound)
}

func (h *AuthHandlers) setOAuthCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(oauthCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) ssoCallbackURL() string {
	return strings.TrimRight(h.BaseURL, "/") + "/api/auth/sso/callback"
}

func (h *AuthHandlers) adminURL(msg string) string {
	u := strings.TrimRight(h.BaseURL, "/") + "/admin"
	if msg != "" {
		u += "?error=" + url.QueryEscape(msg)
	}
	return u
}

func (h *AuthHandlers) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, h.adminURL(msg), http.StatusFound)
}
