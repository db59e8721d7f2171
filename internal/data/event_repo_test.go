package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-events/marquee/internal/domain/model"
	"github.com/marquee-events/marquee/internal/testutil"
)

func TestEventRepo_Create_Get_Update_Delete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEventRepo(db)

		req := testutil.NewEventRequest().
			WithTitle("Garden Gala").
			WithLocation("Rose Pavilion").
			WithEventDate(time.Now().AddDate(0, 1, 0)).
			Published().
			Build()

		e, err := repo.Create(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)
		assert.Equal(t, "Garden Gala", e.Title)
		assert.True(t, e.Published)
		assert.NotZero(t, e.CreatedAt)
		require.NotNil(t, e.EventDate)

		got, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.Title, got.Title)

		updated, err := repo.Update(ctx, e.ID, model.UpdateEventRequest{
			Title:     testutil.StringPtr("Garden Gala 2026"),
			Published: testutil.BoolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Garden Gala 2026", updated.Title)
		assert.False(t, updated.Published)
		// untouched fields survive a partial update
		assert.Equal(t, "Rose Pavilion", updated.Location)

		require.NoError(t, repo.Delete(ctx, e.ID))

		_, err = repo.GetByID(ctx, e.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrEventNotFound)
	})
}

func TestEventRepo_Update_UnknownID(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewEventRepo(db)
		_, err := repo.Update(context.Background(), "00000000-0000-0000-0000-000000000000", model.UpdateEventRequest{
			Title: testutil.StringPtr("renamed"),
		})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventRepo_List_FiltersAndSort(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEventRepo(db)

		mustCreate := func(req *model.CreateEventRequest) *model.Event {
			t.Helper()
			e, err := repo.Create(ctx, req)
			require.NoError(t, err)
			return e
		}

		mustCreate(testutil.NewEventRequest().
			WithTitle("Past Showcase").
			WithEventDate(time.Now().AddDate(0, -2, 0)).
			Published().
			Build())
		soon := mustCreate(testutil.NewEventRequest().
			WithTitle("Spring Fair").
			WithEventDate(time.Now().AddDate(0, 0, 7)).
			Published().
			Build())
		later := mustCreate(testutil.NewEventRequest().
			WithTitle("Summer Ball").
			WithEventDate(time.Now().AddDate(0, 2, 0)).
			Published().
			Build())
		draft := mustCreate(testutil.NewEventRequest().
			WithTitle("Unannounced Party").
			WithEventDate(time.Now().AddDate(0, 0, 3)).
			Build())

		published, err := repo.List(ctx, model.EventsListOptions{PublishedOnly: true})
		require.NoError(t, err)
		require.Len(t, published, 3)
		for _, e := range published {
			assert.NotEqual(t, draft.ID, e.ID)
		}

		upcoming, err := repo.List(ctx, model.EventsListOptions{
			PublishedOnly: true,
			UpcomingOnly:  true,
			Sort:          "event_date",
			Dir:           "asc",
		})
		require.NoError(t, err)
		require.Len(t, upcoming, 2)
		assert.Equal(t, soon.ID, upcoming[0].ID)
		assert.Equal(t, later.ID, upcoming[1].ID)

		limited, err := repo.List(ctx, model.EventsListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		total, err := repo.Count(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		publishedCount, err := repo.Count(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 3, publishedCount)
	})
}

func TestEventRepo_RecentSince(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEventRepo(db)

		for _, title := range []string{"One", "Two", "Three"} {
			_, err := repo.Create(ctx, testutil.NewEventRequest().WithTitle(title).Build())
			require.NoError(t, err)
		}

		recent, err := repo.RecentSince(ctx, time.Now().Add(-time.Hour), 10)
		require.NoError(t, err)
		assert.Len(t, recent, 3)

		limited, err := repo.RecentSince(ctx, time.Now().Add(-time.Hour), 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		none, err := repo.RecentSince(ctx, time.Now().Add(time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
