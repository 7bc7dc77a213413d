package pregel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openbsp/openbsp/internal/build"
)

const (
	outcomeHalted         = "halted"
	outcomeIterationLimit = "iteration_limit"
	outcomeCanceled       = "canceled"
	outcomeError          = "error"
)

var (
	superstepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: build.ProjectName,
		Name:      "supersteps_total",
		Help:      "Total number of completed supersteps across all runs.",
	})

	messagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: build.ProjectName,
		Name:      "messages_sent_total",
		Help:      "Total number of messages sent across all runs.",
	})

	superstepDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: build.ProjectName,
		Name:      "superstep_duration_ms",
		Help:      "Wall time of one superstep, barrier to barrier.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: build.ProjectName,
		Name:      "runs_total",
		Help:      "Engine runs by outcome.",
	}, []string{"outcome"})
)
