package matching

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/btree"
)

// OrderBook holds the resting bid and ask orders for exactly one symbol.
// Every operation runs under one exclusive region scoped to the book: the
// match loop reads the head of a side, conditionally removes it, and the
// rest insertion must observe a consistent state of both, so the critical
// section cannot be split into finer locks. Books for different symbols are
// independent and never share a lock.
type OrderBook struct {
	mu   sync.Mutex
	core bookCore
}

// NewOrderBook creates an empty order book for the given symbol.
func NewOrderBook(symbol string, logger zerolog.Logger) *OrderBook {
	return &OrderBook{core: newBookCore(symbol, logger)}
}

// Symbol returns the symbol this book trades.
func (b *OrderBook) Symbol() string {
	return b.core.symbol
}

// ProcessOrder matches the incoming order against the opposite side under
// strict price-time priority and rests any remainder. The order is consumed
// by value and its final state returned along with the trades produced, in
// chronological match order. Returns *SymbolMismatchError, with the book
// untouched, when the order targets another symbol.
func (b *OrderBook) ProcessOrder(order Order) (Order, []Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.core.processOrder(order)
}

// GetBids returns an independent copy of the resting buy orders, highest
// price first, earliest arrival first within a price.
func (b *OrderBook) GetBids() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return snapshotSide(b.core.bids)
}

// GetAsks returns an independent copy of the resting sell orders, lowest
// price first, earliest arrival first within a price.
func (b *OrderBook) GetAsks() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return snapshotSide(b.core.asks)
}

// TotalBidQty returns the total resting quantity on the buy side.
func (b *OrderBook) TotalBidQty() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sideTotal(b.core.bids)
}

// TotalAskQty returns the total resting quantity on the sell side.
func (b *OrderBook) TotalAskQty() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sideTotal(b.core.asks)
}

// Depth returns aggregated price levels for both sides, best price first,
// taken in one consistent view. A limit <= 0 returns all levels.
func (b *OrderBook) Depth(limit int) (bids, asks []Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return depthSide(b.core.bids, limit), depthSide(b.core.asks, limit)
}

// priceLevel holds the FIFO queue of resting orders at one price. Orders are
// appended on arrival, so position in the queue is time priority.
type priceLevel struct {
	price  int64
	orders []*Order
	volume int64
}

type priceLevels = btree.BTreeG[*priceLevel]

// Level is an aggregated view of one price level, used for depth snapshots.
type Level struct {
	Price    int64
	Quantity int64
	Orders   int
}

// bookCore implements the matching algorithm with no synchronization of its
// own. OrderBook wraps it in a mutex; UnsafeOrderBook exposes it bare for the
// race demonstration.
type bookCore struct {
	symbol string
	bids   *priceLevels
	asks   *priceLevels
	log    zerolog.Logger
}

func newBookCore(symbol string, logger zerolog.Logger) bookCore {
	// Bids sorted highest first, asks lowest first, so Min is always the
	// best price on either side.
	bids := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price > b.price
	})
	asks := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price < b.price
	})
	return bookCore{
		symbol: symbol,
		bids:   bids,
		asks:   asks,
		log:    logger.With().Str("symbol", symbol).Logger(),
	}
}

// processOrder runs the match loop for one incoming order. The order is taken
// by value and the final state is returned to the caller; the only live
// references into book storage are the resting copies the book itself owns.
func (b *bookCore) processOrder(order Order) (Order, []Trade, error) {
	if order.Symbol != b.symbol {
		return order, nil, &SymbolMismatchError{OrderSymbol: order.Symbol, BookSymbol: b.symbol}
	}

	opposite := b.asks
	own := b.bids
	if order.Side == SideSell {
		opposite = b.bids
		own = b.asks
	}

	b.log.Info().
		Str("order_id", order.ID).
		Str("side", string(order.Side)).
		Int64("price", order.Price).
		Int64("quantity", order.Quantity).
		Msg("order attempting match")

	trades := []Trade{}
	for order.RemainingQty > 0 {
		level, ok := opposite.MinMut()
		if !ok {
			break
		}
		if len(level.orders) == 0 {
			opposite.Delete(level)
			continue
		}

		resting := level.orders[0]
		if !canMatch(&order, resting) {
			b.log.Debug().
				Str("order_id", order.ID).
				Str("resting_id", resting.ID).
				Int64("price", order.Price).
				Int64("resting_price", resting.Price).
				Msg("no match against best resting order")
			break
		}

		matched := min(order.RemainingQty, resting.RemainingQty)
		trade := b.newTrade(&order, resting, matched)

		order.RemainingQty -= matched
		resting.RemainingQty -= matched
		level.volume -= matched

		updateOrderStatus(&order)
		updateOrderStatus(resting)

		if resting.RemainingQty == 0 {
			level.orders = level.orders[1:]
			if len(level.orders) == 0 {
				opposite.Delete(level)
			}
		}

		trades = append(trades, trade)

		b.log.Info().
			Str("trade_id", trade.ID).
			Str("order_id", order.ID).
			Str("resting_id", resting.ID).
			Int64("price", trade.Price).
			Int64("quantity", trade.Quantity).
			Msg("trade executed")
	}

	if order.RemainingQty > 0 {
		b.rest(own, order)
		b.log.Info().
			Str("order_id", order.ID).
			Int64("remaining", order.RemainingQty).
			Msg("order resting on book")
	}

	return order, trades, nil
}

// rest inserts a copy of the order at its price level, appending behind any
// earlier arrivals at the same price.
func (b *bookCore) rest(side *priceLevels, order Order) {
	o := order
	level, ok := side.GetMut(&priceLevel{price: o.Price})
	if ok {
		level.orders = append(level.orders, &o)
		level.volume += o.RemainingQty
		return
	}
	side.Set(&priceLevel{
		price:  o.Price,
		orders: []*Order{&o},
		volume: o.RemainingQty,
	})
}

// canMatch reports whether the incoming order crosses the resting price.
func canMatch(incoming, resting *Order) bool {
	if incoming.Side == SideBuy {
		return incoming.Price >= resting.Price
	}
	return incoming.Price <= resting.Price
}

// newTrade builds the trade for one match event. Execution price is always
// the resting (maker) order's price.
func (b *bookCore) newTrade(incoming, resting *Order, quantity int64) Trade {
	buyID, sellID := incoming.ID, resting.ID
	if incoming.Side == SideSell {
		buyID, sellID = resting.ID, incoming.ID
	}

	tradeType := TradeTypeMakerSell
	if resting.Side == SideBuy {
		tradeType = TradeTypeMakerBuy
	}

	return Trade{
		ID:          uuid.NewString(),
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Symbol:      b.symbol,
		Price:       resting.Price,
		Quantity:    quantity,
		Type:        tradeType,
		ExecutedAt:  time.Now().UTC(),
	}
}

func updateOrderStatus(order *Order) {
	if order.RemainingQty == 0 {
		order.Status = OrderStatusFilled
	} else if order.RemainingQty < order.Quantity {
		order.Status = OrderStatusPartiallyFilled
	}
}

// snapshotSide copies every resting order on one side, best price first and
// FIFO within a level.
func snapshotSide(side *priceLevels) []Order {
	orders := []Order{}
	side.Scan(func(level *priceLevel) bool {
		for _, o := range level.orders {
			orders = append(orders, *o)
		}
		return true
	})
	return orders
}

func sideTotal(side *priceLevels) int64 {
	var total int64
	side.Scan(func(level *priceLevel) bool {
		total += level.volume
		return true
	})
	return total
}

func depthSide(side *priceLevels, limit int) []Level {
	levels := []Level{}
	side.Scan(func(level *priceLevel) bool {
		levels = append(levels, Level{
			Price:    level.price,
			Quantity: level.volume,
			Orders:   len(level.orders),
		})
		return limit <= 0 || len(levels) < limit
	})
	return levels
}
