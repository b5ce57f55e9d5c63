package service

import (
	"context"
	"errors"
	"testing"

	"matchbook/internal/ledger"
	"matchbook/internal/matching"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore always rejects writes so persistence failure handling can be
// exercised.
type failingStore struct{}

func (failingStore) SaveTrades(context.Context, []matching.Trade) error {
	return errors.New("database unavailable")
}

func (failingStore) Close() error { return nil }

func newTestService(store ledger.Store) *OrderService {
	book := matching.NewOrderBook("BTC/USD", zerolog.Nop())
	return NewOrderService(book, store, zerolog.Nop())
}

func TestSubmit_RestingOrder(t *testing.T) {
	svc := newTestService(ledger.NewMemoryStore())

	result, err := svc.Submit(context.Background(), "BTC/USD", "100.50", "2", "LIMIT", "BUY")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Order.ID)
	assert.Equal(t, matching.OrderStatusPending, result.Order.Status)
	assert.Equal(t, int64(100_50000000), result.Order.Price)
	assert.Equal(t, int64(2_00000000), result.Order.RemainingQty)
	assert.Empty(t, result.Trades)
}

func TestSubmit_MatchPersistsTrades(t *testing.T) {
	store := ledger.NewMemoryStore()
	svc := newTestService(store)

	sell, err := svc.Submit(context.Background(), "BTC/USD", "100", "1", "LIMIT", "SELL")
	require.NoError(t, err)

	buy, err := svc.Submit(context.Background(), "BTC/USD", "101", "1", "LIMIT", "BUY")
	require.NoError(t, err)

	require.Len(t, buy.Trades, 1)
	trade := buy.Trades[0]
	assert.Equal(t, sell.Order.ID, trade.SellOrderID)
	assert.Equal(t, buy.Order.ID, trade.BuyOrderID)
	assert.Equal(t, int64(100_00000000), trade.Price)
	assert.Equal(t, matching.OrderStatusFilled, buy.Order.Status)

	saved := store.Trades()
	require.Len(t, saved, 1)
	assert.Equal(t, trade.ID, saved[0].ID)
}

func TestSubmit_ValidationOrder(t *testing.T) {
	svc := newTestService(ledger.NewMemoryStore())

	cases := []struct {
		name     string
		symbol   string
		price    string
		quantity string
		typ      string
		side     string
		wantMsg  string
	}{
		{"blank symbol wins over bad price", "  ", "bogus", "1", "LIMIT", "BUY", "symbol is required"},
		{"unparseable price", "BTC/USD", "bogus", "1", "LIMIT", "BUY", "price must be greater than 0"},
		{"zero price", "BTC/USD", "0", "1", "LIMIT", "BUY", "price must be greater than 0"},
		{"negative quantity", "BTC/USD", "100", "-1", "LIMIT", "BUY", "quantity must be greater than 0"},
		{"bad type after amounts", "BTC/USD", "100", "1", "STOP", "BUY", "invalid order type: must be LIMIT or MARKET"},
		{"bad side last", "BTC/USD", "100", "1", "LIMIT", "SHORT", "invalid order side: must be BUY or SELL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.symbol, tc.price, tc.quantity, tc.typ, tc.side)
			require.Error(t, err)

			var vErr *matching.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantMsg, vErr.Error())
		})
	}
}

func TestSubmit_SymbolMismatch(t *testing.T) {
	svc := newTestService(ledger.NewMemoryStore())

	_, err := svc.Submit(context.Background(), "ETH/USD", "100", "1", "LIMIT", "BUY")
	require.Error(t, err)

	var mismatchErr *matching.SymbolMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "ETH/USD", mismatchErr.OrderSymbol)
	assert.Equal(t, "BTC/USD", mismatchErr.BookSymbol)
}

func TestSubmit_PersistenceFailureIsNotFatal(t *testing.T) {
	svc := newTestService(failingStore{})

	_, err := svc.Submit(context.Background(), "BTC/USD", "100", "1", "LIMIT", "SELL")
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), "BTC/USD", "100", "1", "LIMIT", "BUY")
	require.NoError(t, err)

	// The match itself succeeds; only the ledger write is lost.
	assert.Equal(t, matching.OrderStatusFilled, result.Order.Status)
	require.Len(t, result.Trades, 1)
}
