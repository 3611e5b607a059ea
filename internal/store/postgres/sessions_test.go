package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSessionStore(db)
	ctx := context.Background()
	expires := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "token", "user_id", "expires_at", "created_at"}

	t.Run("CreateSession", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO admin_sessions \(token, user_id, expires_at\)`).
			WithArgs("tok", int64(1), expires).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "tok", 1, expires, time.Now()))

		sess, err := store.CreateSession(ctx, "tok", 1, expires)
		require.NoError(t, err)
		assert.Equal(t, int64(7), sess.ID)
		assert.Equal(t, int64(1), sess.UserID)
		assert.True(t, sess.ExpiresAt.Equal(expires))
	})

	t.Run("GetSessionByTokenExpired", func(t *testing.T) {
		mock.ExpectQuery(`FROM admin_sessions\s+WHERE token = \$1 AND expires_at > NOW\(\)`).
			WithArgs("old").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := store.GetSessionByToken(ctx, "old")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("DeleteExpiredSessions", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM admin_sessions WHERE expires_at <= NOW\(\)`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := store.DeleteExpiredSessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
