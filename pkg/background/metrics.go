package background

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_background_task_runs_total",
			Help: "Background task runs by outcome",
		},
		[]string{"task", "status"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freight_background_task_duration_seconds",
			Help:    "Background task run duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)
)
