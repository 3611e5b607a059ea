package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/horndawg/launchpad/internal/models"
)

// ErrJobNotPending is returned when a status transition targets a job that
// has already reached a terminal state.
var ErrJobNotPending = errors.New("email job is not pending")

type EmailJobStore struct {
	db *sql.DB
}

func NewEmailJobStore(db *sql.DB) *EmailJobStore {
	return &EmailJobStore{db: db}
}

const emailJobColumns = `id, order_id, recipient_email, subject, html_content, status, attempts, last_attempt, sent_at, error_message, created_at`

func (s *EmailJobStore) CreateEmailJob(ctx context.Context, params models.EmailJobCreateParams) (*models.EmailJob, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO email_queue (order_id, recipient_email, subject, html_content, status)
		 VALUES ($1, $2, $3, $4, 'pending')
		 RETURNING `+emailJobColumns,
		params.OrderID, params.Recipient, params.Subject, params.HTMLBody,
	)
	return scanEmailJob(row)
}

func (s *EmailJobStore) NextPendingEmailJob(ctx context.Context) (*models.EmailJob, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+emailJobColumns+`
		 FROM email_queue
		 WHERE status = 'pending'
		 ORDER BY created_at ASC, id ASC
		 LIMIT 1`,
	)
	job, err := scanEmailJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

func (s *EmailJobStore) RecordEmailAttempt(ctx context.Context, jobID int64) (int, error) {
	var attempts int
	err := s.db.QueryRowContext(ctx,
		`UPDATE email_queue
		 SET attempts = attempts + 1,
		     last_attempt = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING attempts`,
		jobID,
	).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrJobNotPending
		}
		return 0, err
	}
	return attempts, nil
}

func (s *EmailJobStore) MarkEmailJobSent(ctx context.Context, jobID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE email_queue
		 SET status = 'sent',
		     sent_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		jobID,
	)
	return expectTransition(res, err)
}

func (s *EmailJobStore) MarkEmailJobRetry(ctx context.Context, jobID int64, lastError string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE email_queue
		 SET error_message = $2
		 WHERE id = $1 AND status = 'pending'`,
		jobID, lastError,
	)
	return expectTransition(res, err)
}

func (s *EmailJobStore) MarkEmailJobFailed(ctx context.Context, jobID int64, lastError string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE email_queue
		 SET status = 'failed',
		     error_message = $2
		 WHERE id = $1 AND status = 'pending'`,
		jobID, lastError,
	)
	return expectTransition(res, err)
}

func (s *EmailJobStore) CountEmailJobsByStatus(ctx context.Context) (*models.EmailStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM email_queue GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.EmailStats{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch models.EmailStatus(status) {
		case models.EmailPending:
			stats.Pending = count
		case models.EmailSent:
			stats.Sent = count
		case models.EmailFailed:
			stats.Failed = count
		}
	}
	return stats, rows.Err()
}

func expectTransition(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotPending
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmailJob(row rowScanner) (*models.EmailJob, error) {
	job := &models.EmailJob{}
	var status string
	err := row.Scan(
		&job.ID, &job.OrderID, &job.Recipient, &job.Subject, &job.HTMLBody,
		&status, &job.Attempts, &job.LastAttemptAt, &job.SentAt, &job.ErrorMessage, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = models.EmailStatus(status)
	return job, nil
}
