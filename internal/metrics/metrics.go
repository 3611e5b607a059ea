// Package metrics holds the Prometheus collectors shared across the app.
// They are registered with the default registry on import and exposed on
// /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EmailsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_emails_sent_total",
		Help: "Emails delivered by the dispatcher.",
	})

	EmailsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_emails_failed_total",
		Help: "Emails moved to the failed state after exhausting attempts.",
	})

	EmailAttemptErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_email_attempt_errors_total",
		Help: "Delivery attempts rejected by the mail transport.",
	})

	DispatcherTicksSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_dispatcher_ticks_skipped_total",
		Help: "Ticks skipped because a previous tick was still running.",
	})

	DispatcherStoreErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_dispatcher_store_errors_total",
		Help: "Ticks aborted by an email queue store error.",
	})

	EmailEnqueueErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_email_enqueue_errors_total",
		Help: "Confirmation emails that could not be queued.",
	})

	ReservationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_reservations_total",
		Help: "Orders created, by source.",
	}, []string{"source"})

	ContactMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_contact_messages_total",
		Help: "Contact form submissions stored.",
	})
)

func init() {
	prometheus.MustRegister(
		EmailsSentTotal,
		EmailsFailedTotal,
		EmailAttemptErrorsTotal,
		DispatcherTicksSkippedTotal,
		DispatcherStoreErrorsTotal,
		EmailEnqueueErrorsTotal,
		ReservationsTotal,
		ContactMessagesTotal,
	)
}
