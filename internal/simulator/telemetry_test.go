package simulator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTelemetry_SnapshotAndReset(t *testing.T) {
	tel := NewTelemetry()

	tel.RecordSuccess(10 * time.Millisecond)
	tel.RecordSuccess(30 * time.Millisecond)
	tel.RecordFailure()

	snap := tel.SnapshotAndReset()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.SuccessfulRequests)
	assert.Equal(t, int64(1), snap.FailedRequests)
	assert.Equal(t, 20*time.Millisecond, snap.AverageLatency)

	// The next window starts from zero.
	empty := tel.SnapshotAndReset()
	assert.Equal(t, int64(0), empty.TotalRequests)
	assert.Equal(t, time.Duration(0), empty.AverageLatency)
}

func TestTelemetry_NoSamplesMeansZeroLatency(t *testing.T) {
	tel := NewTelemetry()
	tel.RecordFailure()

	snap := tel.SnapshotAndReset()
	assert.Equal(t, int64(1), snap.FailedRequests)
	assert.Equal(t, time.Duration(0), snap.AverageLatency)
}

func TestTelemetry_ConcurrentRecording(t *testing.T) {
	tel := NewTelemetry()

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if j%2 == 0 {
					tel.RecordSuccess(time.Millisecond)
				} else {
					tel.RecordFailure()
				}
			}
		}()
	}
	wg.Wait()

	snap := tel.SnapshotAndReset()
	assert.Equal(t, int64(workers*perWorker), snap.TotalRequests)
	assert.Equal(t, snap.SuccessfulRequests+snap.FailedRequests, snap.TotalRequests)
}
