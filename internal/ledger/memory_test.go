package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"matchbook/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(id string) matching.Trade {
	return matching.Trade{
		ID:          id,
		BuyOrderID:  "buy-" + id,
		SellOrderID: "sell-" + id,
		Symbol:      "BTC/USD",
		Price:       100_00000000,
		Quantity:    1_00000000,
		Type:        matching.TradeTypeMakerSell,
		ExecutedAt:  time.Now().UTC(),
	}
}

func TestMemoryStore_SaveAndRead(t *testing.T) {
	store := NewMemoryStore()

	err := store.SaveTrades(context.Background(), []matching.Trade{sampleTrade("t1"), sampleTrade("t2")})
	require.NoError(t, err)
	err = store.SaveTrades(context.Background(), []matching.Trade{sampleTrade("t3")})
	require.NoError(t, err)

	trades := store.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, "t1", trades[0].ID)
	assert.Equal(t, "t2", trades[1].ID)
	assert.Equal(t, "t3", trades[2].ID)
}

func TestMemoryStore_EmptyBatchIsNoop(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SaveTrades(context.Background(), nil))
	assert.Empty(t, store.Trades())
}

func TestMemoryStore_TradesReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SaveTrades(context.Background(), []matching.Trade{sampleTrade("t1")}))

	first := store.Trades()
	first[0].ID = "mutated"

	assert.Equal(t, "t1", store.Trades()[0].ID)
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	store := NewMemoryStore()

	const writers = 8
	const batches = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < batches; j++ {
				_ = store.SaveTrades(context.Background(), []matching.Trade{sampleTrade("t")})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.Trades(), writers*batches)
}

func TestMemoryStore_Close(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Close())
}
