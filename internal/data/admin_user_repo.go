package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/marquee-events/marquee/internal/data/pgxutil"
	"github.com/marquee-events/marquee/internal/domain/model"
)

const adminUserColumns = `id, auth_id, email, display_name, role, avatar_url, created_at, updated_at`

// AdminUserRepo provides database operations for provisioned back-office accounts.
type AdminUserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminUserRepo creates a new AdminUserRepo.
func NewAdminUserRepo(db *sql.DB) *AdminUserRepo {
	return &AdminUserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create provisions a new admin account. auth_id and email are unique.
func (r *AdminUserRepo) Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	if u == nil {
		return nil, errors.New("admin user is required")
	}
	if strings.TrimSpace(u.AuthID) == "" {
		return nil, errors.New("auth_id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, errors.New("email is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO admin_users (auth_id, email, display_name, role, avatar_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+adminUserColumns,
			strings.TrimSpace(u.AuthID),
			strings.ToLower(strings.TrimSpace(u.Email)),
			u.DisplayName,
			u.Role,
			u.AvatarURL,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAdminUserExists
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return &out, nil
}

// GetByAuthID looks up a provisioned account by credential-provider user id.
// ErrAdminUserNotFound means the account is explicitly not provisioned.
func (r *AdminUserRepo) GetByAuthID(ctx context.Context, authID string) (*model.AdminUser, error) {
	if strings.TrimSpace(authID) == "" {
		return nil, errors.New("auth_id is required")
	}
	var out model.AdminUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+adminUserColumns+` FROM admin_users WHERE auth_id = $1`, authID)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to get admin user by auth_id: %w", err)
	}
	return &out, nil
}

// List returns all provisioned accounts ordered by creation time.
func (r *AdminUserRepo) List(ctx context.Context) ([]*model.AdminUser, error) {
	var rowsOut []model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+adminUserColumns+` FROM admin_users ORDER BY created_at ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}
	res := make([]*model.AdminUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateRole changes an account's role.
func (r *AdminUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE admin_users SET role = $1, updated_at = $2 WHERE id = $3`,
			role, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return fmt.Errorf("update admin user role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrAdminUserNotFound
		}
		return nil
	})
}

// Delete removes a provisioned account by ID.
func (r *AdminUserRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, deleteParams{Table: "admin_users", ID: id, NotFound: ErrAdminUserNotFound})
}
