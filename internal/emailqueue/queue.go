// Package emailqueue stores outbound confirmation emails and drains them
// through the mail transport at a fixed rate.
package emailqueue

import (
	"context"
	"fmt"

	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/store"
)

type Queue struct {
	jobs store.EmailJobStore
}

func NewQueue(jobs store.EmailJobStore) *Queue {
	return &Queue{jobs: jobs}
}

// Enqueue inserts one pending job with zero attempts.
func (q *Queue) Enqueue(ctx context.Context, orderID int64, recipient, subject, body string) (*models.EmailJob, error) {
	job, err := q.jobs.CreateEmailJob(ctx, models.EmailJobCreateParams{
		OrderID:   orderID,
		Recipient: recipient,
		Subject:   subject,
		HTMLBody:  body,
	})
	if err != nil {
		return nil, fmt.Errorf("enqueue email for order %d: %w", orderID, err)
	}
	return job, nil
}

func (q *Queue) Stats(ctx context.Context) (*models.EmailStats, error) {
	stats, err := q.jobs.CountEmailJobsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count email jobs: %w", err)
	}
	return stats, nil
}
