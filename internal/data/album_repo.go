package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marquee-events/marquee/internal/data/pgxutil"
	"github.com/marquee-events/marquee/internal/domain/model"
)

const albumColumns = `id, title, description, event_id, cover_image_path, published, created_at, updated_at`

// AlbumRepo provides database operations for albums.
type AlbumRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAlbumRepo creates a new AlbumRepo with a real time provider.
func NewAlbumRepo(db *sql.DB) *AlbumRepo {
	return &AlbumRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new album.
func (r *AlbumRepo) Create(ctx context.Context, req *model.CreateAlbumRequest) (*model.Album, error) {
	if req == nil {
		return nil, errors.New("create album request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	now := r.timeProvider.Now().UTC()
	var out model.Album
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO albums (title, description, event_id, cover_image_path, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+albumColumns,
			strings.TrimSpace(req.Title),
			req.Description,
			req.EventID,
			req.CoverImagePath,
			published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Album])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an album by ID.
func (r *AlbumRepo) GetByID(ctx context.Context, id string) (*model.Album, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id is required")
	}
	var out model.Album
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+albumColumns+` FROM albums WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Album])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("failed to get album by ID: %w", err)
	}
	return &out, nil
}

// List retrieves albums, newest first, optionally published only.
func (r *AlbumRepo) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.Album, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	query := `SELECT ` + albumColumns + ` FROM albums`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.Album
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Album])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	res := make([]*model.Album, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an album. Nil request fields are left unchanged.
func (r *AlbumRepo) Update(ctx context.Context, id string, req model.UpdateAlbumRequest) (*model.Album, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.EventID != nil {
		if strings.TrimSpace(*req.EventID) == "" {
			setParts = append(setParts, "event_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("event_id = $%d", nextIdx()))
			args = append(args, *req.EventID)
		}
	}
	if req.CoverImagePath != nil {
		setParts = append(setParts, fmt.Sprintf("cover_image_path = $%d", nextIdx()))
		args = append(args, *req.CoverImagePath)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	args = append(args, id)

	query := "UPDATE albums SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + albumColumns

	var out model.Album
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Album])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return &out, nil
}

// Delete removes an album and its images (images cascade at the DB level).
func (r *AlbumRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "albums", ID: id, NotFound: ErrAlbumNotFound})
}

// Count returns the total number of albums, optionally published only.
func (r *AlbumRepo) Count(ctx context.Context, publishedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM albums`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	return countQuery(ctx, r.DB, query)
}

// RecentSince lists albums created at or after the cutoff, newest first.
func (r *AlbumRepo) RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Album, error) {
	if limit <= 0 {
		limit = 10
	}
	var rowsOut []model.Album
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+albumColumns+` FROM albums
			WHERE created_at >= $1
			ORDER BY created_at DESC
			LIMIT $2`, cutoff.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Album])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recent albums: %w", err)
	}
	res := make([]*model.Album, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
