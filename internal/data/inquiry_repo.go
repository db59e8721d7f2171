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

const inquiryColumns = `id, name, email, phone, event_type, event_date, message, read, created_at`

// InquiryRepo provides database operations for contact inquiries.
type InquiryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewInquiryRepo creates a new InquiryRepo with a real time provider.
func NewInquiryRepo(db *sql.DB) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewInquiryRepoWithTimeProvider creates a new InquiryRepo with a custom time provider (useful for tests).
func NewInquiryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: tp}
}

// Create inserts a new inquiry from the public contact form.
func (r *InquiryRepo) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error) {
	if req == nil {
		return nil, errors.New("create inquiry request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Inquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO inquiries (name, email, phone, event_type, event_date, message, read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
			RETURNING `+inquiryColumns,
			strings.TrimSpace(req.Name),
			strings.ToLower(strings.TrimSpace(req.Email)),
			req.Phone,
			req.EventType,
			req.EventDate,
			req.Message,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Inquiry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an inquiry by ID.
func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id is required")
	}
	var out model.Inquiry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Inquiry])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by ID: %w", err)
	}
	return &out, nil
}

// List lists inquiries newest first, optionally unread only.
func (r *InquiryRepo) List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*model.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	if unreadOnly {
		query += ` WHERE read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.Inquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Inquiry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	res := make([]*model.Inquiry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead flags an inquiry as read.
func (r *InquiryRepo) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE inquiries SET read = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("mark inquiry read: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrInquiryNotFound
		}
		return nil
	})
}

// Delete removes an inquiry by ID.
func (r *InquiryRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "inquiries", ID: id, NotFound: ErrInquiryNotFound})
}

// Stats aggregates inquiry counts: all-time, this calendar month, and unread.
func (r *InquiryRepo) Stats(ctx context.Context) (*model.InquiryStats, error) {
	now := r.timeProvider.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out model.InquiryStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE created_at >= $1) AS this_month,
				COUNT(*) FILTER (WHERE read = FALSE) AS unread
			FROM inquiries`, monthStart).
			Scan(&out.Total, &out.ThisMonth, &out.Unread)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inquiry stats: %w", err)
	}
	return &out, nil
}

// RecentSince lists inquiries created at or after the cutoff, newest first.
func (r *InquiryRepo) RecentSince(ctx context.Context, cutoff time.Time, limit int) ([]*model.Inquiry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rowsOut []model.Inquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+inquiryColumns+` FROM inquiries
			WHERE created_at >= $1
			ORDER BY created_at DESC
			LIMIT $2`, cutoff.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Inquiry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}
	res := make([]*model.Inquiry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
