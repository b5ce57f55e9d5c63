package simulator

import (
	"testing"

	"matchbook/internal/fixedpoint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLockedDemo_ConservationHolds(t *testing.T) {
	cfg := LockDemoConfig{
		Goroutines:         4,
		OrdersPerGoroutine: 200,
		Price:              fixedpoint.MustParse("100"),
		Quantity:           fixedpoint.MustParse("10"),
	}

	report := RunLockedDemo(cfg)

	require.False(t, report.ReadFault)
	assert.Zero(t, report.Faults)
	assert.True(t, report.ConservationHolds())

	wantInput := int64(4) * 200 * cfg.Quantity
	assert.Equal(t, wantInput, report.InputQtyPerSide)
	assert.Equal(t, wantInput, report.TotalTraded+report.BidsRemaining)
	assert.Equal(t, wantInput, report.TotalTraded+report.AsksRemaining)

	// Every order shares one price, so both sides trade down to the same
	// leftover.
	assert.Equal(t, report.BidsRemaining, report.AsksRemaining)
}

func TestConservationHolds_Arithmetic(t *testing.T) {
	ok := LockDemoReport{
		InputQtyPerSide: 100,
		TotalTraded:     60,
		BidsRemaining:   40,
		AsksRemaining:   40,
	}
	assert.True(t, ok.ConservationHolds())

	leaked := ok
	leaked.BidsRemaining = 30
	assert.False(t, leaked.ConservationHolds())

	faulted := ok
	faulted.Faults = 1
	assert.False(t, faulted.ConservationHolds())

	unreadable := ok
	unreadable.ReadFault = true
	assert.False(t, unreadable.ConservationHolds())
}

func TestDefaultLockDemoConfig(t *testing.T) {
	cfg := DefaultLockDemoConfig()
	assert.Equal(t, 10, cfg.Goroutines)
	assert.Equal(t, 1000, cfg.OrdersPerGoroutine)
	assert.Equal(t, fixedpoint.MustParse("100"), cfg.Price)
	assert.Equal(t, fixedpoint.MustParse("10"), cfg.Quantity)
}
