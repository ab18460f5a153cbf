package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Task outcomes used as the "result" label.
const (
	resultOK       = "ok"
	resultError    = "error"
	resultCanceled = "canceled"
)

var (
	tasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxlab_batch_tasks_total",
		Help: "Total number of batch tasks by operation and result",
	}, []string{"op", "result"})

	taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voxlab_batch_task_duration_seconds",
		Help:    "Duration of batch tasks by operation",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"op"})

	samplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxlab_batch_samples_total",
		Help: "Total number of samples processed by successful batch tasks",
	}, []string{"op"})
)
