// Prometheus instrumentation for the dedup engine.
//
// The HTTP layer already measures transport traffic; the collectors here
// track domain outcomes, which is what operators actually alert on
// (a surge of duplicates in one chat, eviction volume after a window
// change, storage faults).
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// dedupOutcomes counts processed messages by outcome
	// (skipped / novel / duplicate / error).
	dedupOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dedup_messages_total",
			Help: "Total number of processed messages by dedup outcome.",
		},
		[]string{"outcome"},
	)

	// dedupEvicted counts rows removed by retention sweeps.
	dedupEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dedup_records_evicted_total",
			Help: "Total number of records deleted by retention sweeps.",
		},
	)

	// dedupSweepFailures counts sweeps that errored. Sweep errors never
	// fail the message being processed, so this counter is the only
	// visibility besides logs.
	dedupSweepFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dedup_sweep_failures_total",
			Help: "Total number of failed retention sweeps.",
		},
	)
)

func init() {
	prometheus.MustRegister(dedupOutcomes, dedupEvicted, dedupSweepFailures)
}
