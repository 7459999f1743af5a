package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "thermal_comfort"

// Metrics holds the Prometheus counters, histograms, and gauges for report
// computation and alert publishing.
type Metrics struct {
	// Report metrics.
	ReportRequests *prometheus.CounterVec   // labels: report={validation,shortterm,longterm,...}, outcome={success,error}
	ReportDuration *prometheus.HistogramVec // labels: report
	DatasetRows    *prometheus.GaugeVec     // labels: dataset={simulation,shortterm,longterm}

	// Alert publisher metrics.
	AlertsPublished      prometheus.Counter
	PublishErrors        prometheus.Counter
	PublisherRunning     prometheus.Gauge
	PublishCycleDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ReportRequests,
		m.ReportDuration,
		m.DatasetRows,
		m.AlertsPublished,
		m.PublishErrors,
		m.PublisherRunning,
		m.PublishCycleDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_requests_total",
			Help:      "Report computations by report kind and outcome.",
		}, []string{"report", "outcome"}),
		ReportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time to load the dataset and compute a report.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"report"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows read from each dataset on its last load.",
		}, []string{"dataset"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_published_total",
			Help:      "Total alert messages written to the alert topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total failed alert publish cycles.",
		}),
		PublisherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publisher_running",
			Help:      "1 when the alert publisher is active, 0 when shut down.",
		}),
		PublishCycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_cycle_duration_seconds",
			Help:      "Duration of a complete compute-and-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
