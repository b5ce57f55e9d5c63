package matching

import "github.com/rs/zerolog"

// UnsafeOrderBook runs the same matching algorithm as OrderBook with no
// synchronization at all. It exists only so the simulator's race
// demonstration can show the conservation invariant breaking under
// concurrent load. Never use it where more than one goroutine can touch it.
type UnsafeOrderBook struct {
	core bookCore
}

// NewUnsafeOrderBook creates an empty unsynchronized book for the symbol.
func NewUnsafeOrderBook(symbol string, logger zerolog.Logger) *UnsafeOrderBook {
	return &UnsafeOrderBook{core: newBookCore(symbol, logger)}
}

// Symbol returns the symbol this book trades.
func (b *UnsafeOrderBook) Symbol() string {
	return b.core.symbol
}

// ProcessOrder matches the incoming order without taking any lock.
func (b *UnsafeOrderBook) ProcessOrder(order Order) (Order, []Trade, error) {
	return b.core.processOrder(order)
}

// GetBids returns a copy of the resting buy orders, highest price first.
func (b *UnsafeOrderBook) GetBids() []Order {
	return snapshotSide(b.core.bids)
}

// GetAsks returns a copy of the resting sell orders, lowest price first.
func (b *UnsafeOrderBook) GetAsks() []Order {
	return snapshotSide(b.core.asks)
}

// TotalBidQty returns the total resting quantity on the buy side.
func (b *UnsafeOrderBook) TotalBidQty() int64 {
	return sideTotal(b.core.bids)
}

// TotalAskQty returns the total resting quantity on the sell side.
func (b *UnsafeOrderBook) TotalAskQty() int64 {
	return sideTotal(b.core.asks)
}
