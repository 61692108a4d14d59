package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"promptpic/internal/domain"
)

// SessionRepo implements the session token port.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates the session repository over db.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, token, username string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions(token, username, expires_at, created_at) VALUES($1, $2, $3, $4);",
		token, username, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token, or nil when absent or expired.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT token, username, expires_at, created_at FROM sessions WHERE token=$1;", token)

	var s domain.Session
	if err := row.Scan(&s.Token, &s.Username, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if time.Now().After(s.ExpiresAt) {
		_, _ = r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token=$1;", token)
		return nil, nil
	}
	return &s, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token=$1;", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1;", time.Now())
	return err
}
