// Package metrics は Prometheus のメトリクスを定義する。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "stock_app"

// アプリで使うメトリクス一式
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge

	SalesRecorded   prometheus.Counter
	UnitsSold       prometheus.Counter
	PhotosStored    prometheus.Counter
	PhotoFileErrors *prometheus.CounterVec // op: put / delete
	CacheLookups    *prometheus.CounterVec // result: hit / miss
}

func New() *Metrics {
	return &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		SalesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "recorded_total",
			Help:      "Total sales recorded.",
		}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "units_total",
			Help:      "Total units sold.",
		}),
		PhotosStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "photos",
			Name:      "stored_total",
			Help:      "Total photo files stored.",
		}),
		PhotoFileErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "photos",
				Name:      "file_errors_total",
				Help:      "Photo file operations that failed and were skipped.",
			},
			[]string{"op"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dashboard",
				Name:      "cache_lookups_total",
				Help:      "Dashboard cache lookups by result.",
			},
			[]string{"result"},
		),
	}
}

// ランタイム系もまとめて登録
func (m *Metrics) Register(reg prometheus.Registerer) error {
	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.SalesRecorded,
		m.UnitsSold,
		m.PhotosStored,
		m.PhotoFileErrors,
		m.CacheLookups,
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
