package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/testutil"
)

func TestInquiryRepo_Create_Get_MarkRead_Delete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewInquiryRepo(db)

		req := testutil.NewInquiryRequest().
			WithName("Dana Reed").
			WithEmail("Dana.Reed@Example.com").
			WithEventType("wedding").
			WithMessage("Looking for a venue in June.").
			Build()

		q, err := repo.Create(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, q.ID)
		assert.Equal(t, "Dana Reed", q.Name)
		assert.False(t, q.Read)
		require.NotNil(t, q.EventType)
		assert.Equal(t, "wedding", *q.EventType)

		got, err := repo.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, q.Message, got.Message)

		require.NoError(t, repo.MarkRead(ctx, q.ID))
		got, err = repo.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.True(t, got.Read)

		require.NoError(t, repo.Delete(ctx, q.ID))
		_, err = repo.GetByID(ctx, q.ID)
		assert.ErrorIs(t, err, ErrInquiryNotFound)
		assert.ErrorIs(t, repo.MarkRead(ctx, q.ID), ErrInquiryNotFound)
	})
}

func TestInquiryRepo_List_UnreadOnly(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewInquiryRepo(db)

		first, err := repo.Create(ctx, testutil.NewInquiryRequest().WithName("First").Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewInquiryRequest().WithName("Second").Build())
		require.NoError(t, err)

		require.NoError(t, repo.MarkRead(ctx, first.ID))

		all, err := repo.List(ctx, 10, 0, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		unread, err := repo.List(ctx, 10, 0, true)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, "Second", unread[0].Name)
	})
}

func TestInquiryRepo_Stats(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewInquiryRepo(db)

		read, err := repo.Create(ctx, testutil.NewInquiryRequest().WithName("Read One").Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewInquiryRequest().WithName("Unread One").Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewInquiryRequest().WithName("Unread Two").Build())
		require.NoError(t, err)
		require.NoError(t, repo.MarkRead(ctx, read.ID))

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		// rows were just created, so all fall inside the current month
		assert.Equal(t, 3, stats.ThisMonth)
		assert.Equal(t, 2, stats.Unread)
	})
}

func TestInquiryRepo_RecentSince(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewInquiryRepo(db)

		_, err := repo.Create(ctx, testutil.NewInquiryRequest().WithName("Fresh").Build())
		require.NoError(t, err)

		recent, err := repo.RecentSince(ctx, time.Now().Add(-time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Fresh", recent[0].Name)

		none, err := repo.RecentSince(ctx, time.Now().Add(time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
