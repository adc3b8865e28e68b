package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics, registered on their own registry
// so independent instances never collide.
type Metrics struct {
	registry *prometheus.Registry

	// Outbox related metrics
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram

	// Broker metrics
	BrokerPublishes *prometheus.CounterVec

	// Mail metrics
	InvitesSent   prometheus.Counter
	InvitesFailed prometheus.Counter
}

// New creates the application metrics set under a namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		OutboxEventsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_processed_total",
			Help:      "Total number of successfully processed outbox events",
		}),
		OutboxEventsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_failed_total",
			Help:      "Total number of failed outbox events",
		}),
		OutboxProcessingLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent processing outbox events",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		BrokerPublishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broker_publishes_total",
			Help:      "Total number of broker publish attempts",
		}, []string{"event_type", "status"}),
		InvitesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invites_sent_total",
			Help:      "Total number of invitation emails sent",
		}),
		InvitesFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invites_failed_total",
			Help:      "Total number of invitation emails that failed to send",
		}),
	}
}

// Registry exposes the registry the collectors live on, for scrape
// handlers and for registering further collectors next to them.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
