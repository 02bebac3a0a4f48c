// Package pgsessionrepo provides a PostgreSQL-backed refresh.Repo. The
// refresh_sessions table keys on user_id, so the single-session-per-user
// invariant is enforced by the primary key and the upsert is one atomic
// statement.
package pgsessionrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-session-service/token/refresh"
)

var _ refresh.Repo = (*PostgresSessionRepo)(nil)

type PostgresSessionRepo struct {
	db *sql.DB
}

func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

func (r *PostgresSessionRepo) Upsert(ctx context.Context, session *refresh.Session) error {
	query := `
		INSERT INTO refresh_sessions (user_id, token, issued_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, issued_at = EXCLUDED.issued_at
	`

	if _, err := r.db.ExecContext(ctx, query, session.UserID, session.Token, session.IssuedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepo) GetByUserID(ctx context.Context, userID string) (*refresh.Session, error) {
	query := `
		SELECT user_id, token, issued_at FROM refresh_sessions
		WHERE user_id = $1
	`

	session := &refresh.Session{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&session.UserID, &session.Token, &session.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, refresh.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	query := `
		DELETE FROM refresh_sessions
		WHERE user_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
