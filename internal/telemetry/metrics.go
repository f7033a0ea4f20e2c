package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики выполнения batch'ей и пайплайнов.
var (
	// PipelinesTotal — количество выполненных пайплайнов по статусу.
	// status: "completed" | "failed"
	PipelinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laserfarm_pipelines_total",
		Help: "Number of executed pipelines by status",
	}, []string{"status"})

	// BatchDuration — длительность выполнения batch'а.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "laserfarm_batch_duration_seconds",
		Help:    "Wall-clock duration of a full batch run",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	})

	// ClusterWorkers — количество активных worker-слотов локальных кластеров.
	ClusterWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laserfarm_cluster_workers",
		Help: "Active worker slots across local clusters",
	})
)
