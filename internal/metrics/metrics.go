package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application collectors.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	AppointmentsCreated prometheus.Counter
	OverlapRejections   prometheus.Counter

	RemindersScheduled prometheus.Counter
	RemindersCanceled  prometheus.Counter
	RemindersFired     prometheus.Counter
	RemindersFailed    prometheus.Counter

	StreamClients prometheus.Gauge
}

// New registers the collectors on reg. Tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	const ns = "massage"

	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"route", "method"}),

		AppointmentsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "appointments_created_total",
			Help:      "Appointments created.",
		}),
		OverlapRejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "overlap_rejections_total",
			Help:      "Create or edit attempts rejected because the slot was taken.",
		}),

		RemindersScheduled: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "reminders",
			Name:      "scheduled_total",
			Help:      "Reminder jobs enqueued or replaced.",
		}),
		RemindersCanceled: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "reminders",
			Name:      "canceled_total",
			Help:      "Reminder jobs canceled.",
		}),
		RemindersFired: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "reminders",
			Name:      "fired_total",
			Help:      "Reminder notifications posted.",
		}),
		RemindersFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "reminders",
			Name:      "failed_total",
			Help:      "Reminder jobs that could not post a notification.",
		}),

		StreamClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "stream_clients",
			Help:      "Connected live stream clients.",
		}),
	}
}

// NewNop returns collectors registered nowhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
