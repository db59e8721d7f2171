package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/marquee-events/marquee/internal/data/pgxutil"
)

// countQuery runs a COUNT(*) query and returns the result.
func countQuery(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return count, nil
}

// deleteParams groups parameters for deleteByID (≤3 params rule).
type deleteParams struct {
	Table    string
	ID       string
	NotFound error
}

// deleteByID deletes one row by id, returning the repo's not-found sentinel
// when nothing matched. Table must be a compile-time constant at call sites.
func deleteByID(ctx context.Context, db *sql.DB, p deleteParams) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("id is required")
	}
	return pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM `+p.Table+` WHERE id = $1`, p.ID)
		if err != nil {
			return fmt.Errorf("delete from %s: %w", p.Table, err)
		}
		if tag.RowsAffected() == 0 {
			return p.NotFound
		}
		return nil
	})
}
