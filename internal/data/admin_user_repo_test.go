package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/domain/auth"
	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/testutil"
)

func TestAdminUserRepo_Create_Get_UpdateRole_Delete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdminUserRepo(db)

		created, err := repo.Create(ctx, &model.AdminUser{
			AuthID:      "auth-user-1",
			Email:       "Owner@Marquee.Events",
			DisplayName: "Owner",
			Role:        string(auth.RoleAdmin),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		// stored emails are normalized to lower case
		assert.Equal(t, "owner@marquee.events", created.Email)
		assert.Equal(t, string(auth.RoleAdmin), created.Role)
		assert.NotZero(t, created.CreatedAt)

		got, err := repo.GetByAuthID(ctx, "auth-user-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		require.NoError(t, repo.UpdateRole(ctx, created.ID, string(auth.RoleModerator)))
		got, err = repo.GetByAuthID(ctx, "auth-user-1")
		require.NoError(t, err)
		assert.Equal(t, string(auth.RoleModerator), got.Role)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err = repo.GetByAuthID(ctx, "auth-user-1")
		assert.ErrorIs(t, err, ErrAdminUserNotFound)
	})
}

func TestAdminUserRepo_Create_Duplicate(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdminUserRepo(db)

		_, err := repo.Create(ctx, &model.AdminUser{
			AuthID: "auth-dup",
			Email:  "first@marquee.events",
			Role:   string(auth.RoleAdmin),
		})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.AdminUser{
			AuthID: "auth-dup",
			Email:  "second@marquee.events",
			Role:   string(auth.RoleModerator),
		})
		assert.ErrorIs(t, err, ErrAdminUserExists)

		_, err = repo.Create(ctx, &model.AdminUser{
			AuthID: "auth-other",
			Email:  "first@marquee.events",
			Role:   string(auth.RoleModerator),
		})
		assert.ErrorIs(t, err, ErrAdminUserExists)
	})
}

func TestAdminUserRepo_MissingRows(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdminUserRepo(db)

		_, err := repo.GetByAuthID(ctx, "nobody")
		assert.ErrorIs(t, err, ErrAdminUserNotFound)

		missing := uuid.NewString()
		assert.ErrorIs(t, repo.UpdateRole(ctx, missing, string(auth.RoleAdmin)), ErrAdminUserNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, missing), ErrAdminUserNotFound)
	})
}
