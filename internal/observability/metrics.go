package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// resolution layer.
type Metrics struct {
	ResolutionsTotal *prometheus.CounterVec   // labels: domain, outcome={success,error}
	RecordsReturned  *prometheus.HistogramVec // labels: domain
	RecordsSkipped   *prometheus.CounterVec   // labels: domain

	DatasetPresent     *prometheus.GaugeVec // labels: domain; 1 when the backing file exists
	CacheFilesRemoved  prometheus.Counter
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	RefresherRunning   prometheus.Gauge
}

// NewMetrics creates and registers all resolution metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrodata",
			Name:      "resolutions_total",
			Help:      "Resolution attempts by domain and outcome.",
		}, []string{"domain", "outcome"}),
		RecordsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrodata",
			Name:      "records_returned",
			Help:      "Post-filter payload size per resolution.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"domain"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrodata",
			Name:      "records_skipped_total",
			Help:      "Malformed records dropped during dataset parsing.",
		}, []string{"domain"}),
		DatasetPresent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "agrodata",
			Name:      "dataset_present",
			Help:      "1 when the domain's backing dataset file exists on disk.",
		}, []string{"domain"}),
		CacheFilesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrodata",
			Name:      "cache_files_removed_total",
			Help:      "Derived cache artifacts deleted by the sweeper.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrodata",
			Name:      "snapshots_published_total",
			Help:      "Resolved snapshots published to downstream consumers.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrodata",
			Name:      "publish_errors_total",
			Help:      "Failed snapshot publish attempts.",
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agrodata",
			Name:      "refresher_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.ResolutionsTotal,
		m.RecordsReturned,
		m.RecordsSkipped,
		m.DatasetPresent,
		m.CacheFilesRemoved,
		m.SnapshotsPublished,
		m.PublishErrors,
		m.RefresherRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ResolutionsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agrodata", Name: "resolutions_total"}, []string{"domain", "outcome"}),
		RecordsReturned:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "agrodata", Name: "records_returned"}, []string{"domain"}),
		RecordsSkipped:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agrodata", Name: "records_skipped_total"}, []string{"domain"}),
		DatasetPresent:     prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "agrodata", Name: "dataset_present"}, []string{"domain"}),
		CacheFilesRemoved:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrodata", Name: "cache_files_removed_total"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrodata", Name: "snapshots_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrodata", Name: "publish_errors_total"}),
		RefresherRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agrodata", Name: "refresher_running"}),
	}
}
