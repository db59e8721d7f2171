package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/data"
	domainauth "github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/ports"
)

type stubAdminUsers struct {
	user *model.AdminUser
	err  error
}

func (s stubAdminUsers) GetByAuthID(context.Context, string) (*model.AdminUser, error) {
	return s.user, s.err
}

func TestFindByAuthID_MapsRecordToIdentity(t *testing.T) {
	avatar := "https://cdn.marquee.test/avatars/owner.png"
	dir := New(stubAdminUsers{user: &model.AdminUser{
		ID:          "rec-1",
		AuthID:      "auth-1",
		Email:       "owner@marquee.test",
		DisplayName: "Owner",
		Role:        "admin",
		AvatarURL:   &avatar,
	}})

	id, err := dir.FindByAuthID(context.Background(), "auth-1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, id.Role)
	assert.Equal(t, "rec-1", id.ID)
	assert.Equal(t, avatar, id.AvatarURL)
	assert.False(t, id.Fallback)
}

func TestFindByAuthID_MissingRowIsNotProvisioned(t *testing.T) {
	dir := New(stubAdminUsers{err: data.ErrAdminUserNotFound})

	_, err := dir.FindByAuthID(context.Background(), "unknown")
	assert.ErrorIs(t, err, ports.ErrNotProvisioned)
}

func TestFindByAuthID_RepositoryFailureStaysAmbiguous(t *testing.T) {
	dir := New(stubAdminUsers{err: errors.New("connection reset")})

	_, err := dir.FindByAuthID(context.Background(), "auth-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNotProvisioned)
}
