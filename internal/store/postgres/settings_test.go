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

func TestSettingStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSettingStore(db)
	ctx := context.Background()

	t.Run("GetSetting", func(t *testing.T) {
		mock.ExpectQuery(`FROM settings WHERE setting_key = \$1`).
			WithArgs("product_price").
			WillReturnRows(sqlmock.NewRows([]string{"setting_key", "setting_value", "updated_at"}).
				AddRow("product_price", "24.99", time.Now()))

		setting, err := store.GetSetting(ctx, "product_price")
		require.NoError(t, err)
		assert.Equal(t, "24.99", setting.Value)
	})

	t.Run("GetSettingMissing", func(t *testing.T) {
		mock.ExpectQuery(`FROM settings`).
			WithArgs("product_price").
			WillReturnError(sql.ErrNoRows)

		_, err := store.GetSetting(ctx, "product_price")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("PutSetting", func(t *testing.T) {
		mock.ExpectExec(`ON CONFLICT \(setting_key\) DO UPDATE`).
			WithArgs("product_price", "19.5").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.PutSetting(ctx, "product_price", "19.5"))
	})

	t.Run("InsertSettingIfMissing", func(t *testing.T) {
		mock.ExpectExec(`ON CONFLICT \(setting_key\) DO NOTHING`).
			WithArgs("product_price", "24.99").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, store.InsertSettingIfMissing(ctx, "product_price", "24.99"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
