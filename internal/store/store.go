package store

import (
	"context"
	"time"

	"github.com/horndawg/launchpad/internal/models"
)

type AdminUserStore interface {
	CreateAdminUser(ctx context.Context, username, passwordHash, email string) (*models.AdminUser, error)
	GetAdminUserByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	GetAdminUserByID(ctx context.Context, id int64) (*models.AdminUser, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) (*models.Session, error)
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	// DeleteExpiredSessions returns the number of sessions removed.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type SettingStore interface {
	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	// PutSetting updates the value in place, inserting the row if missing.
	PutSetting(ctx context.Context, key, value string) error
	// InsertSettingIfMissing leaves an existing value untouched.
	InsertSettingIfMissing(ctx context.Context, key, value string) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, params models.OrderCreateParams) (*models.Order, error)
	ListOrders(ctx context.Context, query models.OrderQuery) ([]models.Order, error)
	CountOrders(ctx context.Context, query models.OrderQuery) (int, error)
	ListDistinctProducts(ctx context.Context) ([]string, error)
	GetOrderTotals(ctx context.Context) (*models.OrderTotals, error)
	GetProductStats(ctx context.Context) ([]models.ProductStat, error)
	GetProductBreakdown(ctx context.Context) ([]models.ProductBreakdown, error)
}

type ContactMessageStore interface {
	CreateContactMessage(ctx context.Context, params models.ContactMessageCreateParams) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error)
	CountContactMessages(ctx context.Context) (int, error)
}

type EmailJobStore interface {
	CreateEmailJob(ctx context.Context, params models.EmailJobCreateParams) (*models.EmailJob, error)
	// NextPendingEmailJob returns the oldest pending job, or nil when the
	// queue is empty.
	NextPendingEmailJob(ctx context.Context) (*models.EmailJob, error)
	// RecordEmailAttempt increments attempts and stamps last_attempt_at on a
	// pending job, returning the new attempt count.
	RecordEmailAttempt(ctx context.Context, jobID int64) (int, error)
	MarkEmailJobSent(ctx context.Context, jobID int64) error
	MarkEmailJobRetry(ctx context.Context, jobID int64, lastError string) error
	MarkEmailJobFailed(ctx context.Context, jobID int64, lastError string) error
	CountEmailJobsByStatus(ctx context.Context) (*models.EmailStats, error)
}
