package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LocalStoreFailures counts swallowed local state store failures by operation
	LocalStoreFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotter_local_store_failures_total",
			Help: "Local live coaching state store failures (logged and treated as absent state)",
		},
		[]string{"op"},
	)

	// StaleStatesEvicted counts states cleared on load because they were older than 24h
	StaleStatesEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spotter_local_store_stale_evictions_total",
			Help: "Live coaching states evicted on load for staleness",
		},
	)

	// RemoteWrites counts remote progress writes by result
	RemoteWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotter_remote_writes_total",
			Help: "Remote progress writes by result (saved, error, superseded)",
		},
		[]string{"result"},
	)

	// RemoteWriteDuration observes remote progress write latency
	RemoteWriteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spotter_remote_write_duration_seconds",
			Help:    "Remote progress write latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ResumeDecisions counts what happened when the flow re-entered date selection
	ResumeDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotter_resume_decisions_total",
			Help: "Resume checks by decision (none, offered, silent_restart, fetch_failed)",
		},
		[]string{"decision"},
	)

	// RemoteOnline is 1 while the remote session store answers pings
	RemoteOnline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "spotter_remote_online",
			Help: "Whether the remote session store is reachable (1) or not (0)",
		},
	)
)

func init() {
	prometheus.MustRegister(
		LocalStoreFailures,
		StaleStatesEvicted,
		RemoteWrites,
		RemoteWriteDuration,
		ResumeDecisions,
		RemoteOnline,
	)
}
