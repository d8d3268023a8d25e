package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by outcome and the step they ended at",
		},
		[]string{"outcome", "step"},
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_submission_step_duration_seconds",
			Help:    "Duration of each booking submission step",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Booking notification dispatches by outcome",
		},
		[]string{"outcome"},
	)

	emails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_emails_total",
			Help: "Booking emails by recipient and outcome",
		},
		[]string{"recipient", "outcome"},
	)

	catalogCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Active package cache lookups by result",
		},
		[]string{"result"},
	)
)

func TrackSubmission(outcome, step string) {
	submissions.WithLabelValues(outcome, step).Inc()
}

func ObserveStep(step string, d time.Duration) {
	stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func TrackNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

func TrackEmail(recipient, outcome string) {
	emails.WithLabelValues(recipient, outcome).Inc()
}

func TrackCatalogCache(result string) {
	catalogCache.WithLabelValues(result).Inc()
}
