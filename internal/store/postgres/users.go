package postgres

import (
	"context"
	"database/sql"

	"github.com/horndawg/launchpad/internal/models"
)

type AdminUserStore struct {
	db *sql.DB
}

func NewAdminUserStore(db *sql.DB) *AdminUserStore {
	return &AdminUserStore{db: db}
}

func (s *AdminUserStore) CreateAdminUser(ctx context.Context, username, passwordHash, email string) (*models.AdminUser, error) {
	user := &models.AdminUser{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO admin_users (username, password_hash, email)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.Username, user.PasswordHash, user.Email,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AdminUserStore) GetAdminUserByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, email, created_at
		 FROM admin_users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminUserStore) GetAdminUserByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, email, created_at
		 FROM admin_users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
