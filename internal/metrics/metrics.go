// Package metrics defines Prometheus metrics for the offer catalog client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "offers"

// Catalog API metrics.
var (
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of catalog API requests by operation and outcome.",
	}, []string{"operation", "status"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of catalog API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	CatalogRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_retries_total",
		Help:      "Total number of retried catalog HTTP requests.",
	})
)

// User token metrics.
var (
	TokenFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_fetches_total",
		Help:      "Total number of user token fetches by outcome (cached, registered, error).",
	}, []string{"status"})
)

// Search history metrics.
var (
	HistoryPersistFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_persist_failures_total",
		Help:      "Total number of swallowed search history load/save failures.",
	}, []string{"op"})

	HistoryEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_entries",
		Help:      "Number of entries in the process search history store.",
	})
)

// Outcome label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
