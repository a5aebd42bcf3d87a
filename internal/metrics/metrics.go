package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "evault",
		Name:      "uploads_total",
		Help:      "Containers encoded and stored.",
	})
	DownloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "evault",
		Name:      "downloads_total",
		Help:      "Containers fetched and decoded.",
	})
	DeletesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "evault",
		Name:      "deletes_total",
		Help:      "Containers deleted.",
	})
	FailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evault",
		Name:      "failures_total",
		Help:      "Failed vault operations by operation and error kind.",
	}, []string{"op", "kind"})
	ContainerBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evault",
		Name:      "container_bytes",
		Help:      "Size of stored containers.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 12),
	})
)

func init() {
	prometheus.MustRegister(UploadsTotal, DownloadsTotal, DeletesTotal, FailuresTotal, ContainerBytes)
}
