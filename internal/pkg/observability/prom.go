package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "xuanxin"
)

var (
	ChartComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "chart", "compute_duration_seconds"),
		Help:    "Duration of chart computation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"kind"})
	ChartCacheResult = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "chart", "cache_results_total"),
		Help: "Chart cache lookups by result",
	}, []string{"result"})
	ArchiveConsumeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "archive", "consume_duration_seconds"),
		Help:    "Duration of archive event consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{})
	ArchiveConsumeMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "archive", "consume_messaging_latency_seconds"),
		Help:    "Time between publishing and consuming an archive event in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	ArchivePublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "archive", "publish_failures_total"),
		Help: "Archive events that could not be published after retries",
	}, []string{})
)
