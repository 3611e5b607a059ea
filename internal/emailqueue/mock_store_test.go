package emailqueue

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/horndawg/launchpad/internal/mail"
	"github.com/horndawg/launchpad/internal/models"
)

var errNotPending = errors.New("email job is not pending")

type memJobStore struct {
	mu     sync.Mutex
	jobs   map[int64]*models.EmailJob
	nextID int64
	clock  time.Time

	nextErr   error
	createErr error
	markErr   error

	// honorCtx makes status writes fail on a done context, like a real driver.
	honorCtx bool
}

func newMemJobStore() *memJobStore {
	return &memJobStore{
		jobs:   make(map[int64]*models.EmailJob),
		nextID: 1,
		clock:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memJobStore) CreateEmailJob(_ context.Context, params models.EmailJobCreateParams) (*models.EmailJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.clock = m.clock.Add(time.Second)
	job := &models.EmailJob{
		ID:        m.nextID,
		OrderID:   params.OrderID,
		Recipient: params.Recipient,
		Subject:   params.Subject,
		HTMLBody:  params.HTMLBody,
		Status:    models.EmailPending,
		CreatedAt: m.clock,
	}
	m.nextID++
	m.jobs[job.ID] = job
	cp := *job
	return &cp, nil
}

func (m *memJobStore) NextPendingEmailJob(_ context.Context) (*models.EmailJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	var pending []*models.EmailJob
	for _, j := range m.jobs {
		if j.Status == models.EmailPending {
			pending = append(pending, j)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}
	sort.Slice(pending, func(a, b int) bool {
		if !pending[a].CreatedAt.Equal(pending[b].CreatedAt) {
			return pending[a].CreatedAt.Before(pending[b].CreatedAt)
		}
		return pending[a].ID < pending[b].ID
	})
	cp := *pending[0]
	return &cp, nil
}

func (m *memJobStore) RecordEmailAttempt(_ context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok || j.Status != models.EmailPending {
		return 0, errNotPending
	}
	now := time.Now()
	j.Attempts++
	j.LastAttemptAt = &now
	return j.Attempts, nil
}

func (m *memJobStore) MarkEmailJobSent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.honorCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	if m.markErr != nil {
		return m.markErr
	}
	j, ok := m.jobs[id]
	if !ok || j.Status != models.EmailPending {
		return errNotPending
	}
	now := time.Now()
	j.Status = models.EmailSent
	j.SentAt = &now
	return nil
}

func (m *memJobStore) MarkEmailJobRetry(ctx context.Context, id int64, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.honorCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	j, ok := m.jobs[id]
	if !ok || j.Status != models.EmailPending {
		return errNotPending
	}
	j.ErrorMessage = lastError
	return nil
}

func (m *memJobStore) MarkEmailJobFailed(ctx context.Context, id int64, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.honorCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	j, ok := m.jobs[id]
	if !ok || j.Status != models.EmailPending {
		return errNotPending
	}
	j.Status = models.EmailFailed
	j.ErrorMessage = lastError
	return nil
}

func (m *memJobStore) CountEmailJobsByStatus(_ context.Context) (*models.EmailStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.EmailStats{}
	for _, j := range m.jobs {
		switch j.Status {
		case models.EmailPending:
			stats.Pending++
		case models.EmailSent:
			stats.Sent++
		case models.EmailFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (m *memJobStore) get(id int64) models.EmailJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.jobs[id]
}

// fakeTransport records deliveries. When block is set, Send signals entered
// and waits for release.
type fakeTransport struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error

	// sendCtxErr is the send context's error observed after release.
	sendCtxErr error

	block   bool
	entered chan struct{}
	release chan struct{}
}

func (f *fakeTransport) Send(ctx context.Context, msg mail.Message) error {
	if f.block {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCtxErr = ctx.Err()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
