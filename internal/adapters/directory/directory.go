package directory

// Package directory adapts the admin_users table to the auth layer's
// AdminDirectory port.

import (
	"context"
	"errors"
	"fmt"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/ports"
)

type adminUserReader interface {
	GetByAuthID(ctx context.Context, authID string) (*model.AdminUser, error)
}

// Directory resolves credential-provider user ids to provisioned admin
// identities. A missing row is an explicit not-provisioned rejection; any
// other repository failure stays ambiguous so callers can degrade instead
// of signing the user out.
type Directory struct {
	users adminUserReader
}

var _ ports.AdminDirectory = (*Directory)(nil)

// New constructs a Directory over the admin-user repository.
func New(users adminUserReader) *Directory {
	return &Directory{users: users}
}

func (d *Directory) FindByAuthID(ctx context.Context, authID string) (domainauth.Identity, error) {
	user, err := d.users.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserNotFound) {
			return domainauth.Identity{}, ports.ErrNotProvisioned
		}
		return domainauth.Identity{}, fmt.Errorf("admin lookup: %w", err)
	}
	return toIdentity(user), nil
}

func toIdentity(u *model.AdminUser) domainauth.Identity {
	id := domainauth.Identity{
		ID:          u.ID,
		AuthID:      u.AuthID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        domainauth.Role(u.Role),
	}
	if u.AvatarURL != nil {
		id.AvatarURL = *u.AvatarURL
	}
	return id
}
