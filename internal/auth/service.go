package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
)

// Service provides admin authentication. There is no signup: admins are
// provisioned from configuration by EnsureAdmin.
type Service struct {
	users    store.AdminUserStore
	sessions store.SessionStore
	maxAge   time.Duration
}

// NewService creates a new auth service with the given stores and session max age in hours.
func NewService(users store.AdminUserStore, sessions store.SessionStore, maxAgeHours int) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		maxAge:   time.Duration(maxAgeHours) * time.Hour,
	}
}

// EnsureAdmin creates the admin user if no user with that username exists.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" || email == "" {
		return false, errors.New("admin username, password and email are required")
	}

	_, err := s.users.GetAdminUserByUsername(ctx, username)
	if err == nil {
		slog.Info("admin user already exists", "username", username)
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("looking up admin user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	if _, err := s.users.CreateAdminUser(ctx, username, hash, email); err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("default admin user created", "username", username)
	return true, nil
}

// Login authenticates an admin by username and password, returning a new session.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	user, err := s.users.GetAdminUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.ErrorContext(ctx, "failed to look up admin user", "username", username, "error", err)
		}
		return nil, ErrInvalidCredentials
	}

	if !PasswordMatches(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session, err := s.sessions.CreateSession(ctx, token, user.ID, time.Now().Add(s.maxAge))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Logout deletes the session identified by the given token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// ValidateSession returns the admin owning a live session token.
func (s *Service) ValidateSession(ctx context.Context, token string) (*models.AdminUser, error) {
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.users.GetAdminUserByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}

	return user, nil
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *Service) PurgeExpiredSessions(ctx context.Context) error {
	n, err := s.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("deleting expired sessions: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired admin sessions purged", "count", n)
	}
	return nil
}
