package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/marquee-events/marquee/internal/data/pgxutil"
	"github.com/marquee-events/marquee/internal/domain/model"
)

const galleryImageColumns = `id, album_id, storage_path, caption, sort_order, created_at`

// GalleryImageRepo provides database operations for gallery images.
type GalleryImageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGalleryImageRepo creates a new GalleryImageRepo.
func NewGalleryImageRepo(db *sql.DB) *GalleryImageRepo {
	return &GalleryImageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Add attaches an image to an album.
func (r *GalleryImageRepo) Add(ctx context.Context, req *model.AddGalleryImageRequest) (*model.GalleryImage, error) {
	if req == nil {
		return nil, errors.New("add gallery image request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.GalleryImage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO gallery_images (album_id, storage_path, caption, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+galleryImageColumns,
			req.AlbumID,
			strings.TrimSpace(req.StoragePath),
			req.Caption,
			req.SortOrder,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GalleryImage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to add gallery image: %w", err)
	}
	return &out, nil
}

// ListByAlbum lists images in one album ordered by sort_order.
func (r *GalleryImageRepo) ListByAlbum(ctx context.Context, albumID string) ([]*model.GalleryImage, error) {
	if strings.TrimSpace(albumID) == "" {
		return nil, errors.New("album id is required")
	}
	var rowsOut []model.GalleryImage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+galleryImageColumns+` FROM gallery_images
			WHERE album_id = $1
			ORDER BY sort_order ASC, created_at ASC`, albumID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.GalleryImage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	res := make([]*model.GalleryImage, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes an image by ID.
func (r *GalleryImageRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "gallery_images", ID: id, NotFound: ErrImageNotFound})
}

// Count returns the total number of gallery images.
func (r *GalleryImageRepo) Count(ctx context.Context) (int, error) {
	return countQuery(ctx, r.DB, `SELECT COUNT(*) FROM gallery_images`)
}
