package ledger

import (
	"context"
	"sync"

	"matchbook/internal/matching"
)

// MemoryStore is an in-memory Store used in tests and when the gateway runs
// without a database configured.
type MemoryStore struct {
	mu     sync.Mutex
	trades []matching.Trade
}

// NewMemoryStore creates an empty in-memory trade store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveTrades appends the trades to the store.
func (s *MemoryStore) SaveTrades(_ context.Context, trades []matching.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trades...)
	return nil
}

// Trades returns a copy of every trade saved so far, in insertion order.
func (s *MemoryStore) Trades() []matching.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]matching.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
