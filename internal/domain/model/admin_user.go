//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// AdminUser is one provisioned back-office account. AuthID ties the row to
// the credential provider's user id; accounts are provisioned by an existing
// admin, never self-registered.
type AdminUser struct {
	ID          string    `json:"id"                   db:"id"`
	AuthID      string    `json:"auth_id"              db:"auth_id"`
	Email       string    `json:"email"                db:"email"`
	DisplayName string    `json:"display_name"         db:"display_name"`
	Role        string    `json:"role"                 db:"role"`
	AvatarURL   *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"           db:"updated_at"`
}
