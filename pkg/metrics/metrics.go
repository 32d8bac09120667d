// Package metrics holds the Prometheus collectors for the forecast pipeline.
//
// Collectors are registered on a private registry so tests can build as many
// instances as they need. All methods are safe on a nil receiver, which lets
// callers skip instrumentation entirely.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "demand_forecast"

// ForecastMetrics tracks request outcomes, upstream fetches and model fits.
type ForecastMetrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts forecast requests.
	// Labels: endpoint (legacy, v1), outcome (ok, empty, invalid_input, sales_fetch_failed, forecast_failed)
	RequestsTotal *prometheus.CounterVec

	// FetchDurationSeconds measures sales history retrieval.
	// Labels: status (ok, error)
	FetchDurationSeconds *prometheus.HistogramVec

	// FetchedRecords is the size of the last sales history payload.
	FetchedRecords prometheus.Gauge

	// FitDurationSeconds measures model fit plus prediction.
	FitDurationSeconds prometheus.Histogram

	// SeriesLength is the number of daily points handed to the model.
	SeriesLength prometheus.Histogram
}

// New creates and registers all collectors on a fresh registry.
func New() *ForecastMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &ForecastMetrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Forecast requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		FetchDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sales",
				Name:      "fetch_duration_seconds",
				Help:      "Time spent retrieving sales history from the backend",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),
		FetchedRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sales",
				Name:      "fetched_records",
				Help:      "Number of sales records in the most recent backend payload",
			},
		),
		FitDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "model",
				Name:      "fit_duration_seconds",
				Help:      "Time spent fitting the model and predicting the horizon",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		SeriesLength: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "model",
				Name:      "series_length_days",
				Help:      "Number of daily points used to train the model",
				Buckets:   prometheus.ExponentialBuckets(7, 2, 8),
			},
		),
	}
}

// Registry exposes the underlying registry.
func (m *ForecastMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ForecastMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest counts one finished forecast request.
func (m *ForecastMetrics) ObserveRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveFetch records one upstream call.
func (m *ForecastMetrics) ObserveFetch(err error, records int, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	} else {
		m.FetchedRecords.Set(float64(records))
	}
	m.FetchDurationSeconds.WithLabelValues(status).Observe(elapsed.Seconds())
}

// ObserveFit records one model fit.
func (m *ForecastMetrics) ObserveFit(points int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SeriesLength.Observe(float64(points))
	m.FitDurationSeconds.Observe(elapsed.Seconds())
}
