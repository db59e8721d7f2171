package authapi

// Package authapi implements ports.CredentialProvider against a hosted
// GoTrue-compatible auth API (password grant, refresh grant, user lookup,
// sign-out, verification resend). The adapter holds the current credential
// in memory the way the hosted provider's own SDK does, and emits
// credential-change events as it signs in, refreshes, and signs out.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/ports"
)

// refreshSkew refreshes tokens slightly before their hard expiry.
const refreshSkew = 30 * time.Second

// Options configures the Client.
type Options struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Logger  *slog.Logger
}

// Client is the HTTP credential provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger

	mu     sync.Mutex
	cred   *domainauth.Credential
	events chan ports.AuthEvent
}

var _ ports.CredentialProvider = (*Client)(nil)

// New constructs a Client. BaseURL must point at the provider's auth
// endpoint root (e.g. "https://project.supabase.co/auth/v1").
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("authapi: BaseURL is required")
	}
	httpClient := opts.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		http:    httpClient,
		logger:  logger,
		events:  make(chan ports.AuthEvent, 8),
	}, nil
}

// tokenResponse is the provider's grant response shape.
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (e errorResponse) message() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Msg
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (domainauth.Credential, error) {
	body := map[string]string{"email": email, "password": password}
	var tok tokenResponse
	if err := c.post(ctx, "/token?grant_type=password", "", body, &tok); err != nil {
		return domainauth.Credential{}, mapSignInError(err)
	}

	cred := tok.credential()
	c.setCredential(&cred, ports.AuthEventSignedIn)
	return cred, nil
}

// mapSignInError translates provider rejections into sentinel errors.
func mapSignInError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	switch {
	case apiErr.Code == "email_not_confirmed" || strings.Contains(msg, "email not confirmed"):
		return ports.ErrEmailNotVerified
	case apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized:
		return ports.ErrInvalidCredentials
	default:
		return err
	}
}

func (c *Client) GetSession(ctx context.Context) (domainauth.Credential, error) {
	c.mu.Lock()
	cred := c.cred
	c.mu.Unlock()

	if cred == nil {
		return domainauth.Credential{}, ports.ErrNoCredential
	}
	if time.Until(cred.ExpiresAt) > refreshSkew {
		return *cred, nil
	}
	return c.refresh(ctx, cred.RefreshToken)
}

// refresh exchanges the refresh token for a new credential. A provider-side
// rejection means the session is gone; transport failures stay errors so
// callers can tell the two apart.
func (c *Client) refresh(ctx context.Context, refreshToken string) (domainauth.Credential, error) {
	var tok tokenResponse
	err := c.post(ctx, "/token?grant_type=refresh_token", "", map[string]string{"refresh_token": refreshToken}, &tok)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			c.setCredential(nil, ports.AuthEventSignedOut)
			return domainauth.Credential{}, ports.ErrNoCredential
		}
		return domainauth.Credential{}, err
	}

	cred := tok.credential()
	c.setCredential(&cred, ports.AuthEventTokenRefreshed)
	return cred, nil
}

func (c *Client) SetSession(ctx context.Context, accessToken, refreshToken string) (domainauth.Credential, error) {
	var user userResponse
	if err := c.get(ctx, "/user", accessToken, &user); err != nil {
		// A stale access token may still carry a usable refresh token.
		if refreshToken != "" {
			return c.refresh(ctx, refreshToken)
		}
		return domainauth.Credential{}, err
	}

	cred := domainauth.Credential{
		UserID:         user.ID,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmedAt != nil,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		// The provider does not echo expiry on user lookup; assume a short
		// window and let the refresh path extend it.
		ExpiresAt: time.Now().Add(time.Minute),
		Metadata:  stringMetadata(user.UserMetadata),
	}
	c.setCredential(&cred, ports.AuthEventSignedIn)
	return cred, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	cred := c.cred
	c.mu.Unlock()

	if cred != nil {
		if err := c.post(ctx, "/logout", cred.AccessToken, nil, nil); err != nil {
			c.logger.WarnContext(ctx, "provider logout failed", "error", err)
		}
	}
	c.setCredential(nil, ports.AuthEventSignedOut)
	return nil
}

func (c *Client) Resend(ctx context.Context, email, redirectTo string) error {
	body := map[string]any{
		"type":  "signup",
		"email": email,
	}
	if redirectTo != "" {
		body["options"] = map[string]string{"email_redirect_to": redirectTo}
	}
	return c.post(ctx, "/resend", "", body, nil)
}

func (c *Client) Events() <-chan ports.AuthEvent { return c.events }

func (c *Client) setCredential(cred *domainauth.Credential, kind ports.AuthEventKind) {
	c.mu.Lock()
	c.cred = cred
	c.mu.Unlock()
	select {
	case c.events <- ports.AuthEvent{Kind: kind, Credential: cred}:
	default:
		// Stream is full; state is still consistent, only the event is lost.
	}
}

func (t tokenResponse) credential() domainauth.Credential {
	return domainauth.Credential{
		UserID:         t.User.ID,
		Email:          t.User.Email,
		EmailConfirmed: t.User.EmailConfirmedAt != nil,
		AccessToken:    t.AccessToken,
		RefreshToken:   t.RefreshToken,
		ExpiresAt:      time.Now().Add(time.Duration(t.ExpiresIn) * time.Second),
		Metadata:       stringMetadata(t.User.UserMetadata),
	}
}

func stringMetadata(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api: status %d: %s", e.Status, e.Message)
}

func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, bearer, body, out)
}

func (c *Client) get(ctx context.Context, path, bearer string, out any) error {
	return c.do(ctx, http.MethodGet, path, bearer, nil, out)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Code: apiErr.ErrorCode, Message: apiErr.message()}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
