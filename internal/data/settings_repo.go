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

// SettingsRepo provides database operations for the key/value settings table.
type SettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Get returns one setting by key.
func (r *SettingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("setting key is required")
	}
	var out model.Setting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1`, key)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &out, nil
}

// List returns all settings ordered by key.
func (r *SettingsRepo) List(ctx context.Context) ([]*model.Setting, error) {
	var rowsOut []model.Setting
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Setting])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	res := make([]*model.Setting, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Upsert writes a setting by unique key, inserting or replacing the value.
func (r *SettingsRepo) Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.Setting, error) {
	if req == nil {
		return nil, errors.New("upsert setting request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Setting
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
			RETURNING key, value, updated_at`,
			strings.TrimSpace(req.Key),
			req.Value,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &out, nil
}

// Delete removes a setting by key.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("setting key is required")
	}
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
		if err != nil {
			return fmt.Errorf("delete setting: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSettingNotFound
		}
		return nil
	})
}
