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

const socialLinkColumns = `id, url, label, platform, sort_order, created_at`

// SocialLinkRepo provides database operations for social profile links.
type SocialLinkRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSocialLinkRepo creates a new SocialLinkRepo.
func NewSocialLinkRepo(db *sql.DB) *SocialLinkRepo {
	return &SocialLinkRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new social link.
func (r *SocialLinkRepo) Create(ctx context.Context, l *model.SocialLink) (*model.SocialLink, error) {
	if l == nil {
		return nil, errors.New("social link is required")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	var out model.SocialLink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO social_links (url, label, platform, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+socialLinkColumns,
			strings.TrimSpace(l.URL), l.Label, l.Platform, l.SortOrder,
			r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SocialLink])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create social link: %w", err)
	}
	return &out, nil
}

// List returns social links ordered by sort_order.
func (r *SocialLinkRepo) List(ctx context.Context) ([]*model.SocialLink, error) {
	var rowsOut []model.SocialLink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+socialLinkColumns+` FROM social_links ORDER BY sort_order ASC, created_at ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.SocialLink])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list social links: %w", err)
	}
	res := make([]*model.SocialLink, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes a social link by ID.
func (r *SocialLinkRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "social_links", ID: id, NotFound: ErrSocialLinkNotFound})
}
