package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_ticks_total",
		Help: "Total number of scheduling ticks, dirty or not",
	})

	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_sweeps_total",
		Help: "Total number of full evaluation sweeps",
	})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "illogical_sweep_duration_seconds",
		Help:    "Duration of full evaluation sweeps",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~160ms
	})

	nodeEvaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_node_evaluations_total",
		Help: "Total number of node evaluations, including recursive ones",
	})

	cyclesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_cycles_detected_total",
		Help: "Total number of times evaluation re-entered a node already on the stack",
	})

	depthLimitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_depth_limit_hits_total",
		Help: "Total number of evaluations cut off by the recursion depth limit",
	})

	graphRebuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "illogical_graph_rebuilds_total",
		Help: "Total number of dependency graph rebuilds",
	})

	connectErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "illogical_connect_errors_total",
		Help: "Total number of rejected connections by reason",
	}, []string{"reason"})
)
