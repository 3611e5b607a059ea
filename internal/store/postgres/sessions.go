package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/horndawg/launchpad/internal/models"
)

const sessionColumns = `id, token, user_id, expires_at, created_at`

// SessionStore keeps admin login sessions. Expired rows are invisible to
// lookups and removed by DeleteExpiredSessions.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func scanSession(row interface{ Scan(...any) error }) (*models.Session, error) {
	var sess models.Session
	if err := row.Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) (*models.Session, error) {
	sess, err := scanSession(s.db.QueryRowContext(ctx,
		`INSERT INTO admin_sessions (token, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING `+sessionColumns,
		token, userID, expiresAt.UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("insert admin session: %w", err)
	}
	return sess, nil
}

// GetSessionByToken returns sql.ErrNoRows for unknown or expired tokens.
func (s *SessionStore) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	return scanSession(s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM admin_sessions
		 WHERE token = $1 AND expires_at > NOW()`,
		token,
	))
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token = $1`, token)
	return err
}

func (s *SessionStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
