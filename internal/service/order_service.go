// Package service orchestrates order submission: validation, matching, and
// best-effort trade persistence.
package service

import (
	"context"
	"fmt"
	"strings"

	"matchbook/internal/fixedpoint"
	"matchbook/internal/ledger"
	"matchbook/internal/matching"

	"github.com/rs/zerolog"
)

// SubmitResult carries the final order state and the trades one submission
// produced. The order is returned by value; no caller ever holds a live
// reference into book storage.
type SubmitResult struct {
	Order  matching.Order
	Trades []matching.Trade
}

// OrderService validates raw submissions, runs them through the book and
// persists the resulting trades.
type OrderService struct {
	book  *matching.OrderBook
	store ledger.Store
	log   zerolog.Logger
}

// NewOrderService creates an order service around one book and one trade
// store.
func NewOrderService(book *matching.OrderBook, store ledger.Store, logger zerolog.Logger) *OrderService {
	return &OrderService{
		book:  book,
		store: store,
		log:   logger.With().Str("component", "order_service").Logger(),
	}
}

// Submit validates the raw fields, builds the order, matches it and persists
// any trades. Persistence runs strictly after the matching call returns and
// outside the book's lock; a persistence failure is logged, not propagated.
func (s *OrderService) Submit(ctx context.Context, symbol, price, quantity, orderType, side string) (SubmitResult, error) {
	if strings.TrimSpace(symbol) == "" {
		return SubmitResult{}, matching.NewValidationError("symbol is required")
	}

	priceInt, err := fixedpoint.Parse(price)
	if err != nil {
		return SubmitResult{}, matching.NewValidationError("price must be greater than 0")
	}

	qtyInt, err := fixedpoint.Parse(quantity)
	if err != nil {
		return SubmitResult{}, matching.NewValidationError("quantity must be greater than 0")
	}

	order, err := matching.CreateOrder(symbol, priceInt, qtyInt, orderType, side)
	if err != nil {
		return SubmitResult{}, err
	}

	s.log.Info().Str("order_id", order.ID).Msg("submitting order to book")

	final, trades, err := s.process(order)
	if err != nil {
		return SubmitResult{}, err
	}

	s.log.Info().
		Str("order_id", final.ID).
		Int("trades", len(trades)).
		Msg("order matched")

	if len(trades) > 0 {
		if err := s.store.SaveTrades(ctx, trades); err != nil {
			s.log.Error().Err(err).
				Str("order_id", final.ID).
				Int("trades", len(trades)).
				Msg("trade persistence failed")
		}
	}

	return SubmitResult{Order: final, Trades: trades}, nil
}

// process runs the matching call with panic recovery. The book applies each
// call atomically, so a recovered fault cannot leave it half mutated. There
// is no retry: matching is not idempotent and resubmission would create a new
// order identity.
func (s *OrderService) process(order matching.Order) (final matching.Order, trades []matching.Trade, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("order_id", order.ID).
				Interface("panic", r).
				Msg("order failed during matching")
			err = fmt.Errorf("matching failed: %v", r)
		}
	}()
	return s.book.ProcessOrder(order)
}
