package emailqueue

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/horndawg/launchpad/internal/mail"
	"github.com/horndawg/launchpad/internal/metrics"
	"github.com/horndawg/launchpad/internal/store"
)

const (
	defaultInterval    = 9 * time.Second
	defaultMaxAttempts = 3
	defaultSendTimeout = 30 * time.Second

	// statusWriteTimeout bounds the status update that follows a send.
	statusWriteTimeout = 5 * time.Second
)

type Options struct {
	// Interval between ticks; one job at most is sent per tick.
	Interval    time.Duration
	MaxAttempts int
	SendTimeout time.Duration
}

type Dispatcher struct {
	jobs        store.EmailJobStore
	transport   mail.Transport
	from        string
	interval    time.Duration
	maxAttempts int
	sendTimeout time.Duration

	running atomic.Bool
}

func NewDispatcher(jobs store.EmailJobStore, transport mail.Transport, from string, opts Options) *Dispatcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	sendTimeout := opts.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}

	return &Dispatcher{
		jobs:        jobs,
		transport:   transport,
		from:        from,
		interval:    interval,
		maxAttempts: maxAttempts,
		sendTimeout: sendTimeout,
	}
}

// Run wakes every interval and starts a tick. A wake that lands while the
// previous tick is still sending is skipped. Run returns once ctx is done and
// the in-flight tick has finished.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("email dispatcher started", "interval", d.interval.String(), "max_attempts", d.maxAttempts)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			slog.Info("email dispatcher stopping")
			return
		case <-ticker.C:
			wg.Go(func() { d.Tick(ctx) })
		}
	}
}

// Tick processes at most one pending job and reports whether a job was
// advanced. Concurrent calls return false immediately.
func (d *Dispatcher) Tick(ctx context.Context) bool {
	if !d.running.CompareAndSwap(false, true) {
		metrics.DispatcherTicksSkippedTotal.Inc()
		slog.Debug("email dispatcher tick skipped, previous tick still running")
		return false
	}
	defer d.running.Store(false)

	return d.processOne(ctx)
}

func (d *Dispatcher) processOne(ctx context.Context) bool {
	job, err := d.jobs.NextPendingEmailJob(ctx)
	if err != nil {
		metrics.DispatcherStoreErrorsTotal.Inc()
		slog.Error("select next email job failed", "error", err)
		return false
	}
	if job == nil {
		return false
	}

	// The attempt is recorded before sending so a crash mid-send still
	// counts against the job.
	attempts, err := d.jobs.RecordEmailAttempt(ctx, job.ID)
	if err != nil {
		metrics.DispatcherStoreErrorsTotal.Inc()
		slog.Error("record email attempt failed", "job_id", job.ID, "error", err)
		return false
	}

	// From here the send and its status write ignore cancelation of ctx;
	// each is bounded by its own timeout.
	detached := context.WithoutCancel(ctx)

	sendCtx, cancelSend := context.WithTimeout(detached, d.sendTimeout)
	sendErr := d.transport.Send(sendCtx, mail.Message{
		From:    d.from,
		To:      job.Recipient,
		Subject: job.Subject,
		HTML:    job.HTMLBody,
	})
	cancelSend()

	ctx, cancel := context.WithTimeout(detached, statusWriteTimeout)
	defer cancel()

	if sendErr == nil {
		if err := d.jobs.MarkEmailJobSent(ctx, job.ID); err != nil {
			// The message went out; the job stays pending and will be sent again.
			metrics.DispatcherStoreErrorsTotal.Inc()
			slog.Error("mark email job sent failed", "job_id", job.ID, "order_id", job.OrderID, "error", err)
			return true
		}
		metrics.EmailsSentTotal.Inc()
		slog.Info("email sent", "job_id", job.ID, "order_id", job.OrderID, "attempts", attempts)
		return true
	}

	metrics.EmailAttemptErrorsTotal.Inc()
	reason := sendErr.Error()

	if attempts >= d.maxAttempts {
		if err := d.jobs.MarkEmailJobFailed(ctx, job.ID, reason); err != nil {
			metrics.DispatcherStoreErrorsTotal.Inc()
			slog.Error("persist terminal email failure", "job_id", job.ID, "error", err)
			return true
		}
		metrics.EmailsFailedTotal.Inc()
		slog.Warn("email permanently failed", "job_id", job.ID, "order_id", job.OrderID, "attempts", attempts, "error", reason)
		return true
	}

	if err := d.jobs.MarkEmailJobRetry(ctx, job.ID, reason); err != nil {
		metrics.DispatcherStoreErrorsTotal.Inc()
		slog.Error("record email error failed", "job_id", job.ID, "error", err)
		return true
	}
	slog.Warn("email send failed, will retry", "job_id", job.ID, "attempts", attempts, "max_attempts", d.maxAttempts, "error", reason)
	return true
}
