package simulator

import (
	"sync/atomic"
	"time"
)

// Telemetry accumulates request outcomes from concurrent load workers.
type Telemetry struct {
	totalRequests      atomic.Int64
	successfulRequests atomic.Int64
	failedRequests     atomic.Int64
	totalLatencyNanos  atomic.Int64
	latencySamples     atomic.Int64
}

// NewTelemetry creates an empty collector.
func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

// RecordSuccess records one successful request and its latency.
func (t *Telemetry) RecordSuccess(latency time.Duration) {
	t.totalRequests.Add(1)
	t.successfulRequests.Add(1)
	t.totalLatencyNanos.Add(latency.Nanoseconds())
	t.latencySamples.Add(1)
}

// RecordFailure records one failed request.
func (t *Telemetry) RecordFailure() {
	t.totalRequests.Add(1)
	t.failedRequests.Add(1)
}

// Snapshot is one reporting window's worth of telemetry.
type Snapshot struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	AverageLatency     time.Duration
}

// SnapshotAndReset drains the counters into a snapshot, starting the next
// window at zero.
func (t *Telemetry) SnapshotAndReset() Snapshot {
	total := t.totalRequests.Swap(0)
	success := t.successfulRequests.Swap(0)
	failed := t.failedRequests.Swap(0)
	latencyNanos := t.totalLatencyNanos.Swap(0)
	samples := t.latencySamples.Swap(0)

	var avg time.Duration
	if samples > 0 {
		avg = time.Duration(latencyNanos / samples)
	}

	return Snapshot{
		TotalRequests:      total,
		SuccessfulRequests: success,
		FailedRequests:     failed,
		AverageLatency:     avg,
	}
}
