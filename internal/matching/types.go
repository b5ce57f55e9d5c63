package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side represents order side (buy/sell)
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide parses an order side case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SideBuy):
		return SideBuy, nil
	case string(SideSell):
		return SideSell, nil
	}
	return "", newValidationError("invalid order side: must be BUY or SELL")
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents order type (limit/market)
type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// ParseOrderType parses an order type case-insensitively.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(OrderTypeLimit):
		return OrderTypeLimit, nil
	case string(OrderTypeMarket):
		return OrderTypeMarket, nil
	}
	return "", newValidationError("invalid order type: must be LIMIT or MARKET")
}

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// TradeType tags which side the resting (maker) order was on.
type TradeType string

const (
	TradeTypeMakerBuy  TradeType = "MAKER_BUY"
	TradeTypeMakerSell TradeType = "MAKER_SELL"
)

// Order represents an order submitted to the book. Price, Quantity and
// RemainingQty are fixed-point decimals in minimum units (see fixedpoint).
type Order struct {
	ID           string
	Symbol       string
	Price        int64
	Quantity     int64
	RemainingQty int64
	Type         OrderType
	Side         Side
	Status       OrderStatus
	CreatedAt    time.Time
}

// FilledQty returns the quantity matched so far.
func (o *Order) FilledQty() int64 {
	return o.Quantity - o.RemainingQty
}

// Trade represents a single match event. Trades are immutable once created.
// Type records the side of the resting (maker) order; the taker side is its
// opposite and is not stored separately.
type Trade struct {
	ID          string
	BuyOrderID  string
	SellOrderID string
	Symbol      string
	Price       int64
	Quantity    int64
	Type        TradeType
	ExecutedAt  time.Time
}

// ValidationError reports a malformed order submission. The book is never
// touched when one is returned.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(msg string) *ValidationError {
	return newValidationError(msg)
}

// SymbolMismatchError reports an order routed to the wrong book.
type SymbolMismatchError struct {
	OrderSymbol string
	BookSymbol  string
}

func (e *SymbolMismatchError) Error() string {
	return fmt.Sprintf("order symbol %s does not match order book symbol %s", e.OrderSymbol, e.BookSymbol)
}

// CreateOrder validates raw order fields and constructs a pending order.
// Checks run in a fixed sequence and the first failure wins; nothing is
// mutated on failure.
func CreateOrder(symbol string, price, quantity int64, orderType, side string) (Order, error) {
	if strings.TrimSpace(symbol) == "" {
		return Order{}, newValidationError("symbol is required")
	}
	if price <= 0 {
		return Order{}, newValidationError("price must be greater than 0")
	}
	if quantity <= 0 {
		return Order{}, newValidationError("quantity must be greater than 0")
	}

	typ, err := ParseOrderType(orderType)
	if err != nil {
		return Order{}, err
	}

	sd, err := ParseSide(side)
	if err != nil {
		return Order{}, err
	}

	return Order{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Price:        price,
		Quantity:     quantity,
		RemainingQty: quantity,
		Type:         typ,
		Side:         sd,
		Status:       OrderStatusPending,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
