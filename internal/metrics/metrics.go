// Package metrics exposes Prometheus instrumentation for the dataset
// pipeline and API. Init must be called once before any observation; the
// observation helpers are no-ops until then so library code never has to
// care whether metrics are wired.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "simdata_"

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	fetchRequests *prometheus.CounterVec
	fetchLatency  prometheus.Histogram

	yearsProcessed *prometheus.CounterVec

	datasetsServed *prometheus.CounterVec
)

// Init registers the pipeline metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		fetchRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fetch_requests_total",
				Help: "Price service requests by result",
			},
			[]string{"result"},
		)
		fetchLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "fetch_latency_seconds",
				Help:    "Price service request latency",
				Buckets: prometheus.DefBuckets,
			},
		)
		yearsProcessed = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "years_processed_total",
				Help: "Pipeline year runs by result",
			},
			[]string{"result"},
		)
		datasetsServed = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "datasets_served_total",
				Help: "Dataset files served by kind",
			},
			[]string{"kind"},
		)

		prometheus.MustRegister(fetchRequests, fetchLatency, yearsProcessed, datasetsServed)
	})
}

// ObserveFetch records one request against the pricing service.
func ObserveFetch(result string, d time.Duration) {
	if fetchRequests == nil {
		return
	}
	fetchRequests.WithLabelValues(result).Inc()
	fetchLatency.Observe(d.Seconds())
}

// YearProcessed records the outcome of one per-year pipeline run.
func YearProcessed(result string) {
	if yearsProcessed == nil {
		return
	}
	yearsProcessed.WithLabelValues(result).Inc()
}

// DatasetServed records one dataset file served by the API.
func DatasetServed(kind string) {
	if datasetsServed == nil {
		return
	}
	datasetsServed.WithLabelValues(kind).Inc()
}
