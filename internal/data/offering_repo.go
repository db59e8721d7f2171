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

const offeringColumns = `id, name, description, icon_path, sort_order, active, created_at, updated_at`

// OfferingRepo provides database operations for service offerings.
type OfferingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOfferingRepo creates a new OfferingRepo.
func NewOfferingRepo(db *sql.DB) *OfferingRepo {
	return &OfferingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new offering.
func (r *OfferingRepo) Create(ctx context.Context, o *model.Offering) (*model.Offering, error) {
	if o == nil {
		return nil, errors.New("offering is required")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Offering
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO offerings (name, description, icon_path, sort_order, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+offeringColumns,
			strings.TrimSpace(o.Name), o.Description, o.IconPath, o.SortOrder, o.Active, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Offering])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}
	return &out, nil
}

// List returns offerings ordered by sort_order, optionally active only.
func (r *OfferingRepo) List(ctx context.Context, activeOnly bool) ([]*model.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	var rowsOut []model.Offering
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Offering])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	res := make([]*model.Offering, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update replaces the mutable fields of an offering.
func (r *OfferingRepo) Update(ctx context.Context, o *model.Offering) (*model.Offering, error) {
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return nil, errors.New("offering with id is required")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var out model.Offering
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE offerings
			SET name = $1, description = $2, icon_path = $3, sort_order = $4, active = $5, updated_at = $6
			WHERE id = $7
			RETURNING `+offeringColumns,
			strings.TrimSpace(o.Name), o.Description, o.IconPath, o.SortOrder, o.Active,
			r.timeProvider.Now().UTC(), o.ID)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Offering])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferingNotFound
		}
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}
	return &out, nil
}

// Delete removes an offering by ID.
func (r *OfferingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "offerings", ID: id, NotFound: ErrOfferingNotFound})
}
