package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   prometheus.Histogram
	ReportCache      *prometheus.CounterVec
	ShiftAnomalies   prometheus.Counter
	ManualEntries    *prometheus.CounterVec
	CronJobRuns      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"path", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_reports_total",
			Help: "Attendance reports built, by outcome",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_report_duration_seconds",
			Help:    "Time to fetch and reconcile one attendance report",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_report_cache_total",
			Help: "Report cache lookups, by result",
		}, []string{"result"}),
		ShiftAnomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_shift_anomalies_total",
			Help: "Employee-days where more than one shift applied",
		}),
		ManualEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_manual_entries_total",
			Help: "Manual attendance corrections submitted, by mode",
		}, []string{"mode"}),
		CronJobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Scheduled job executions, by job and outcome",
		}, []string{"job", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ReportsGenerated,
		m.ReportDuration,
		m.ReportCache,
		m.ShiftAnomalies,
		m.ManualEntries,
		m.CronJobRuns,
	)
	return m
}

// Registry exposes the collector registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by route pattern so path parameters do not
// explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveReport(err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ReportsGenerated.WithLabelValues(outcome).Inc()
	if err == nil {
		m.ReportDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if hit {
		m.ReportCache.WithLabelValues("hit").Inc()
		return
	}
	m.ReportCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveAnomalies(n int) {
	m.ShiftAnomalies.Add(float64(n))
}

func (m *Metrics) ObserveManualEntry(mode string) {
	m.ManualEntries.WithLabelValues(mode).Inc()
}

func (m *Metrics) ObserveCronJob(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.CronJobRuns.WithLabelValues(job, outcome).Inc()
}
