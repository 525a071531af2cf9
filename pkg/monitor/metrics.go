package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcome labels for the runsTotal counter
const (
	statusSuccess = "success"
	statusFailure = "failure"
	statusTimeout = "timeout"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_runs_total",
		Help: "Total monitoring script runs by outcome.",
	}, []string{"status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "monitor_run_duration_seconds",
		Help:    "Wall-clock duration of monitoring script runs.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// observeRun records the outcome and duration of a single run
func observeRun(status string, elapsed time.Duration) {
	runsTotal.WithLabelValues(status).Inc()
	if elapsed > 0 {
		runDuration.Observe(elapsed.Seconds())
	}
}
