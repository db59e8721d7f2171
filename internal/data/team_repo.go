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

const teamMemberColumns = `id, name, title, bio, photo_path, sort_order, active, created_at, updated_at`

// TeamRepo provides database operations for team members.
type TeamRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTeamRepo creates a new TeamRepo.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new team member.
func (r *TeamRepo) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	if m == nil {
		return nil, errors.New("team member is required")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO team_members (name, title, bio, photo_path, sort_order, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+teamMemberColumns,
			strings.TrimSpace(m.Name), m.Title, m.Bio, m.PhotoPath, m.SortOrder, m.Active, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return &out, nil
}

// List returns team members ordered by sort_order, optionally active only.
func (r *TeamRepo) List(ctx context.Context, activeOnly bool) ([]*model.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	var rowsOut []model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	res := make([]*model.TeamMember, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update replaces the mutable fields of a team member.
func (r *TeamRepo) Update(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	if m == nil || strings.TrimSpace(m.ID) == "" {
		return nil, errors.New("team member with id is required")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var out model.TeamMember
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE team_members
			SET name = $1, title = $2, bio = $3, photo_path = $4, sort_order = $5, active = $6, updated_at = $7
			WHERE id = $8
			RETURNING `+teamMemberColumns,
			strings.TrimSpace(m.Name), m.Title, m.Bio, m.PhotoPath, m.SortOrder, m.Active,
			r.timeProvider.Now().UTC(), m.ID)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TeamMember])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}
	return &out, nil
}

// Delete removes a team member by ID.
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "team_members", ID: id, NotFound: ErrTeamMemberNotFound})
}
