package postgres

import (
	"context"
	"database/sql"

	"github.com/horndawg/launchpad/internal/models"
)

type SettingStore struct {
	db *sql.DB
}

func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

func (s *SettingStore) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	setting := &models.Setting{}
	err := s.db.QueryRowContext(ctx,
		`SELECT setting_key, setting_value, updated_at
		 FROM settings WHERE setting_key = $1`,
		key,
	).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingStore) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (setting_key, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_key) DO UPDATE
		 SET setting_value = EXCLUDED.setting_value,
		     updated_at = NOW()`,
		key, value,
	)
	return err
}

func (s *SettingStore) InsertSettingIfMissing(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (setting_key, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_key) DO NOTHING`,
		key, value,
	)
	return err
}
