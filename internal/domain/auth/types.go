package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// FallbackRole is the role granted when a credential is valid but the
// admin-directory lookup failed for an ambiguous reason (transport error,
// timeout). Granting moderator instead of forcing a logout is a deliberate
// availability-over-strictness tradeoff; see DESIGN.md.
const FallbackRole = RoleModerator

// Identity is the resolved admin/moderator record used for authorization
// decisions. Absent identity means "not authenticated".
type Identity struct {
	ID          string `json:"id"`
	AuthID      string `json:"auth_id"` // credential-provider user id
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	// Fallback marks a best-effort identity derived from the credential
	// itself rather than from an admin-directory record.
	Fallback bool `json:"fallback,omitempty"`
}

// Credential is the backend credential pair plus the user metadata the
// provider attaches to it. Adapters map provider-specific payloads into
// this shape.
type Credential struct {
	UserID         string
	Email          string
	EmailConfirmed bool
	AccessToken    string
	RefreshToken   string
	ExpiresAt      time.Time
	Metadata       map[string]string
}

// DisplayName derives a human-readable name from the credential metadata,
// falling back to the e-mail local part.
func (c Credential) DisplayName() string {
	if name, ok := c.Metadata["display_name"]; ok && name != "" {
		return name
	}
	if name, ok := c.Metadata["full_name"]; ok && name != "" {
		return name
	}
	for i := 0; i < len(c.Email); i++ {
		if c.Email[i] == '@' {
			return c.Email[:i]
		}
	}
	return c.Email
}

// FallbackIdentity builds a best-effort identity from the credential alone.
// Used when the admin-directory lookup fails ambiguously.
func (c Credential) FallbackIdentity() Identity {
	return Identity{
		AuthID:      c.UserID,
		Email:       c.Email,
		DisplayName: c.DisplayName(),
		Role:        FallbackRole,
		Fallback:    true,
	}
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session identity carries the admin role.
func (s Session) IsAdmin() bool { return s.Identity.Role == RoleAdmin }

// Snapshot is the reactive session state exposed to subscribers: the
// current identity (nil when unauthenticated) and whether a resolution
// pass is in flight.
type Snapshot struct {
	Identity *Identity
	Loading  bool
}

// Authenticated reports whether the snapshot carries an identity.
func (s Snapshot) Authenticated() bool { return s.Identity != nil }
