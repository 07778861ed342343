package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// RoleRepo provides database operations for user role lookups.
type RoleRepo struct {
	DB *sql.DB
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{DB: db}
}

// GetRole returns the role recorded for a user. A missing row is NotFound,
// not RoleNone; the auth service decides how to treat absence.
func (r *RoleRepo) GetRole(ctx context.Context, userID string) (domainauth.Role, error) {
	var raw string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT role FROM user_roles WHERE user_id = $1`, userID,
		).Scan(&raw)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.RoleNone, apperrors.NotFoundf("no role recorded for user %s", userID)
		}
		return domainauth.RoleNone, apperrors.MapDBError(err)
	}
	return domainauth.ParseRole(raw), nil
}
