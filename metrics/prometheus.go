package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	supplierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplier_requests_total",
			Help: "Total number of HTTP requests issued to supplier APIs.",
		},
		[]string{"supplier", "endpoint", "status"},
	)
	supplierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supplier_request_duration_seconds",
			Help:    "Histogram of supplier API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"supplier", "endpoint"},
	)
	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Cache hits by TTL category.",
		},
		[]string{"category"},
	)
	cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Cache misses by TTL category.",
		},
		[]string{"category"},
	)
	cacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_errors_total",
			Help: "Cache backend errors by operation. Errors are logged and bypassed, never propagated.",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(supplierRequestsTotal)
	prometheus.MustRegister(supplierRequestDuration)
	prometheus.MustRegister(cacheHitsTotal)
	prometheus.MustRegister(cacheMissesTotal)
	prometheus.MustRegister(cacheErrorsTotal)
}

// RecordSupplierRequest записывает метрики одного запроса к API поставщика.
func RecordSupplierRequest(supplier, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	supplierRequestsTotal.WithLabelValues(supplier, endpoint, status).Inc()
	supplierRequestDuration.WithLabelValues(supplier, endpoint).Observe(duration.Seconds())
}

func RecordCacheHit(category string)    { cacheHitsTotal.WithLabelValues(category).Inc() }
func RecordCacheMiss(category string)   { cacheMissesTotal.WithLabelValues(category).Inc() }
func RecordCacheError(operation string) { cacheErrorsTotal.WithLabelValues(operation).Inc() }

// classifyStatus сводит код ответа к классу (2xx/4xx/5xx).
func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return strconv.Itoa(statusCode)
	}
}
