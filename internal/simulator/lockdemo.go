package simulator

import (
	"sync"
	"sync/atomic"

	"matchbook/internal/fixedpoint"
	"matchbook/internal/matching"

	"github.com/rs/zerolog"
)

const lockDemoSymbol = "DEMO"

// LockDemoConfig sizes one race demonstration run. Every order is a limit
// order for Quantity at Price, so per-side conservation is analytically
// predictable: input == traded + resting.
type LockDemoConfig struct {
	Goroutines         int
	OrdersPerGoroutine int
	Price              int64
	Quantity           int64
}

// DefaultLockDemoConfig mirrors the observed demonstration parameters.
func DefaultLockDemoConfig() LockDemoConfig {
	return LockDemoConfig{
		Goroutines:         10,
		OrdersPerGoroutine: 1000,
		Price:              fixedpoint.MustParse("100"),
		Quantity:           fixedpoint.MustParse("10"),
	}
}

// LockDemoReport is the outcome of one demonstration run.
type LockDemoReport struct {
	InputQtyPerSide int64
	TotalTraded     int64
	BidsRemaining   int64
	AsksRemaining   int64
	Faults          int64
	ReadFault       bool
}

// ConservationHolds reports whether both sides conserve quantity exactly and
// no faults occurred.
func (r LockDemoReport) ConservationHolds() bool {
	if r.ReadFault || r.Faults > 0 {
		return false
	}
	buyAccounted := r.TotalTraded + r.BidsRemaining
	sellAccounted := r.TotalTraded + r.AsksRemaining
	return buyAccounted == r.InputQtyPerSide && sellAccounted == r.InputQtyPerSide
}

// processFunc is the submission entry point shared by both book variants.
type processFunc func(matching.Order) (matching.Order, []matching.Trade, error)

// RunLockedDemo floods a mutex-protected book with equal concurrent buy and
// sell flow. Conservation must hold exactly.
func RunLockedDemo(cfg LockDemoConfig) LockDemoReport {
	book := matching.NewOrderBook(lockDemoSymbol, zerolog.Nop())
	return runDemo(cfg, book.ProcessOrder, book.TotalBidQty, book.TotalAskQty)
}

// RunUnsafeDemo runs the identical load against the unsynchronized book.
// Expect corrupted totals, spurious faults, or both.
func RunUnsafeDemo(cfg LockDemoConfig) LockDemoReport {
	book := matching.NewUnsafeOrderBook(lockDemoSymbol, zerolog.Nop())
	return runDemo(cfg, book.ProcessOrder, book.TotalBidQty, book.TotalAskQty)
}

func runDemo(cfg LockDemoConfig, process processFunc, bidTotal, askTotal func() int64) LockDemoReport {
	var (
		traded atomic.Int64
		faults atomic.Int64
		wg     sync.WaitGroup
	)

	sides := []string{"BUY", "SELL"}
	for i := 0; i < cfg.Goroutines; i++ {
		for _, side := range sides {
			wg.Add(1)
			go func(side string) {
				defer wg.Done()
				for j := 0; j < cfg.OrdersPerGoroutine; j++ {
					submitOne(cfg, process, side, &traded, &faults)
				}
			}(side)
		}
	}
	wg.Wait()

	report := LockDemoReport{
		InputQtyPerSide: int64(cfg.Goroutines) * int64(cfg.OrdersPerGoroutine) * cfg.Quantity,
		TotalTraded:     traded.Load(),
		Faults:          faults.Load(),
	}

	// Reading a corrupted book can itself blow up.
	func() {
		defer func() {
			if r := recover(); r != nil {
				report.ReadFault = true
			}
		}()
		report.BidsRemaining = bidTotal()
		report.AsksRemaining = askTotal()
	}()

	return report
}

func submitOne(cfg LockDemoConfig, process processFunc, side string, traded, faults *atomic.Int64) {
	defer func() {
		if r := recover(); r != nil {
			faults.Add(1)
		}
	}()

	order, err := matching.CreateOrder(lockDemoSymbol, cfg.Price, cfg.Quantity, "LIMIT", side)
	if err != nil {
		faults.Add(1)
		return
	}

	_, trades, err := process(order)
	if err != nil {
		faults.Add(1)
		return
	}
	for _, t := range trades {
		traded.Add(t.Quantity)
	}
}
