package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marquee-events/marquee/internal/data/pgxutil"
	"github.com/marquee-events/marquee/internal/domain/model"
)

const testimonialColumns = `id, author, quote, event_name, approved, created_at`

// TestimonialRepo provides database operations for testimonials.
type TestimonialRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTestimonialRepo creates a new TestimonialRepo.
func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new testimonial. New testimonials start unapproved.
func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	if t == nil {
		return nil, errors.New("testimonial is required")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	var out model.Testimonial
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO testimonials (author, quote, event_name, approved, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+testimonialColumns,
			strings.TrimSpace(t.Author), t.Quote, t.EventName, t.Approved,
			r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Testimonial])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return &out, nil
}

// List returns testimonials newest first, optionally approved only.
func (r *TestimonialRepo) List(ctx context.Context, limit int, approvedOnly bool) ([]*model.Testimonial, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if approvedOnly {
		query += ` WHERE approved = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	var rowsOut []model.Testimonial
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Testimonial])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	res := make([]*model.Testimonial, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetApproved toggles a testimonial's approval flag.
func (r *TestimonialRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE testimonials SET approved = $1 WHERE id = $2`, approved, id)
		if err != nil {
			return fmt.Errorf("set testimonial approved: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrTestimonialNotFound
		}
		return nil
	})
}

// Delete removes a testimonial by ID.
func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "testimonials", ID: id, NotFound: ErrTestimonialNotFound})
}

// RecentSince lists testimonials created at or after the cutoff, newest first.
func (r *TestimonialRepo) RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Testimonial, error) {
	if limit <= 0 {
		limit = 10
	}
	var rowsOut []model.Testimonial
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+testimonialColumns+` FROM testimonials
			WHERE created_at >= $1
			ORDER BY created_at DESC
			LIMIT $2`, cutoff.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Testimonial])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recent testimonials: %w", err)
	}
	res := make([]*model.Testimonial, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
