package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workforce_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workforce_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workforce_operations_total",
		Help: "Count of service operations by name and result",
	}, []string{"operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workforce_operation_duration_seconds",
		Help:    "Duration of service operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	orphanedAssignments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workforce_orphaned_assignments_total",
		Help: "Tasks rendered with an unresolved assignee",
	})

	summaryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workforce_summary_cache_lookups_total",
		Help: "Employee summary cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	eventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "workforce_event_subscribers",
		Help: "Number of connected change-feed clients",
	})

	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workforce_events_dropped_total",
		Help: "Change events dropped for slow subscribers",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveOperation records the outcome and duration of a service operation.
// result is one of ok, invalid, conflict, not_found or error.
func ObserveOperation(operation, result string, duration time.Duration) {
	operationsTotal.WithLabelValues(operation, result).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveOrphans counts tasks whose assignee could not be resolved
func ObserveOrphans(count int) {
	if count > 0 {
		orphanedAssignments.Add(float64(count))
	}
}

// ObserveCacheLookup counts summary cache results
func ObserveCacheLookup(result string, count int) {
	if count > 0 {
		summaryCacheLookups.WithLabelValues(result).Add(float64(count))
	}
}

// SetSubscribers sets the connected change-feed client gauge
func SetSubscribers(count int) {
	if count < 0 {
		count = 0
	}
	eventSubscribers.Set(float64(count))
}

// ObserveDroppedEvent counts an event not delivered to a slow subscriber
func ObserveDroppedEvent() {
	eventsDropped.Inc()
}
