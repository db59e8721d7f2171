package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/testutil"
)

func TestSettingsRepo_UpsertByKey(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewSettingsRepo(db)

		created, err := repo.Upsert(ctx, &model.UpsertSettingRequest{
			Key:   "contact_email",
			Value: "hello@marquee.events",
		})
		require.NoError(t, err)
		assert.Equal(t, "contact_email", created.Key)
		assert.Equal(t, "hello@marquee.events", created.Value)
		assert.NotZero(t, created.UpdatedAt)

		// same key replaces the value instead of inserting a second row
		replaced, err := repo.Upsert(ctx, &model.UpsertSettingRequest{
			Key:   "contact_email",
			Value: "bookings@marquee.events",
		})
		require.NoError(t, err)
		assert.Equal(t, "bookings@marquee.events", replaced.Value)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "bookings@marquee.events", all[0].Value)

		got, err := repo.Get(ctx, "contact_email")
		require.NoError(t, err)
		assert.Equal(t, "bookings@marquee.events", got.Value)
	})
}

func TestSettingsRepo_GetAndDelete_Missing(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewSettingsRepo(db)

		_, err := repo.Get(ctx, "no_such_key")
		assert.ErrorIs(t, err, ErrSettingNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "no_such_key"), ErrSettingNotFound)

		_, err = repo.Upsert(ctx, &model.UpsertSettingRequest{Key: "logo_path", Value: "branding/logo.png"})
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, "logo_path"))
		_, err = repo.Get(ctx, "logo_path")
		assert.ErrorIs(t, err, ErrSettingNotFound)
	})
}

func TestSettingsRepo_Upsert_RequiresKey(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSettingsRepo(db)
		_, err := repo.Upsert(context.Background(), &model.UpsertSettingRequest{Key: "  ", Value: "x"})
		assert.Error(t, err)
	})
}
