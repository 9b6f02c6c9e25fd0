package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder publishes dashboard metrics on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	datasetLoads    *prometheus.CounterVec
	datasetRows     prometheus.Gauge
	reports         *prometheus.CounterVec
	chartRenderTime *prometheus.HistogramVec
}

// NewRecorder creates a recorder with Go and process collectors registered
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Recorder{
		registry: registry,
		datasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_dataset_loads_total",
			Help: "Dataset loads by outcome.",
		}, []string{"outcome"}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_dataset_rows",
			Help: "Rows in the cached dataset.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_reports_total",
			Help: "Reports built by variant and outcome.",
		}, []string{"variant", "outcome"}),
		chartRenderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_chart_render_seconds",
			Help:    "Chart rendering duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"chart"}),
	}

	registry.MustRegister(r.datasetLoads)
	registry.MustRegister(r.datasetRows)
	registry.MustRegister(r.reports)
	registry.MustRegister(r.chartRenderTime)

	return r
}

// Registry returns the Prometheus registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// DatasetLoaded records a load attempt and, on success, the row count
func (r *Recorder) DatasetLoaded(rows int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.datasetLoads.WithLabelValues("error").Inc()
		return
	}
	r.datasetLoads.WithLabelValues("ok").Inc()
	r.datasetRows.Set(float64(rows))
}

// ReportBuilt records a report request outcome
func (r *Recorder) ReportBuilt(variant string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.reports.WithLabelValues(variant, outcome).Inc()
}

// ChartRendered observes how long one chart took
func (r *Recorder) ChartRendered(chart string, since time.Time) {
	if r == nil {
		return
	}
	r.chartRenderTime.WithLabelValues(chart).Observe(time.Since(since).Seconds())
}
