package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by handler.",
		},
		[]string{"handler"},
	)

	sourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "source_fetch_total",
			Help:      "Count of reservation source fetches by source and result.",
		},
		[]string{"source", "result"},
	)

	sourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reservas",
			Name:      "source_fetch_duration_seconds",
			Help:      "Time spent fetching the reservation source.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	recordsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "records_dropped_total",
			Help:      "Count of source records dropped during normalization by reason.",
		},
		[]string{"reason"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reservas",
			Name:      "cache_hits_total",
			Help:      "Count of reservation lists served from the response cache.",
		},
	)

	reservationsReturned = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reservas",
			Name:      "reservations_returned",
			Help:      "Number of reservations in the last successful list.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			sourceFetches,
			sourceFetchDuration,
			recordsDropped,
			cacheHits,
			reservationsReturned,
		)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

// ObserveFetch records one source fetch.
func ObserveFetch(source string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	sourceFetches.WithLabelValues(source, result).Inc()
	sourceFetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

func IncDropped(reason string) {
	recordsDropped.WithLabelValues(reason).Inc()
}

func IncCacheHit() {
	cacheHits.Inc()
}

func SetReturned(n int) {
	reservationsReturned.Set(float64(n))
}
