// Package metrics defines the custom Prometheus metrics of the listing API.
// Everything registers with the default registry on package init through promauto.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/estatehub/listing-api/internal/core/ports"
)

const namespace = "listing"

// SearchesTotal counts property searches.
// Label sort: newest, oldest, price_asc, price_desc.
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of property searches, by sort order.",
	},
	[]string{"sort"},
)

// SearchMatches observes the total match count of each search.
var SearchMatches = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_matches",
		Help:      "Number of properties matching a search before paging.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	},
)

// SearchRejectedTotal counts searches refused for invalid criteria.
var SearchRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_rejected_total",
		Help:      "Total number of searches rejected with a validation error.",
	},
)

// PropertyWritesTotal counts listing mutations.
// Label op: create, update, delete, image.
var PropertyWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_writes_total",
		Help:      "Total number of successful listing mutations, by operation.",
	},
	[]string{"op"},
)

// SignInsTotal counts successful authentications.
// Label method: register, password, google, facebook, apple.
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of successful registrations and logins, by method.",
	},
	[]string{"method"},
)

// LifecycleEventsTotal counts background cleanup events.
// Labels kind: property_deleted, user_deleted; result: ok, error.
var LifecycleEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_events_total",
		Help:      "Total number of lifecycle events processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// LifecycleDuration measures how long one lifecycle event takes to process.
var LifecycleDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lifecycle_duration_seconds",
		Help:      "Duration of lifecycle event processing.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

type instrumentedLifecycle struct {
	next ports.LifecycleService
}

// InstrumentLifecycle wraps svc so every processed event is counted and timed.
func InstrumentLifecycle(svc ports.LifecycleService) ports.LifecycleService {
	return &instrumentedLifecycle{next: svc}
}

func (s *instrumentedLifecycle) Process(ctx context.Context, ev ports.LifecycleEvent) error {
	start := time.Now()
	err := s.next.Process(ctx, ev)
	LifecycleDuration.WithLabelValues(string(ev.Kind)).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	LifecycleEventsTotal.WithLabelValues(string(ev.Kind), result).Inc()
	return err
}
