package api

import (
	"encoding/json"
	"time"
)

// SubmitOrderRequest is the wire request for POST /orders. Price and quantity
// are decoded as json.Number so decimal precision survives the boundary.
type SubmitOrderRequest struct {
	Symbol   string      `json:"symbol"`
	Price    json.Number `json:"price"`
	Quantity json.Number `json:"quantity"`
	Type     string      `json:"type"`
	Side     string      `json:"side"`
}

// TradeResponse is one executed trade in a submission response.
type TradeResponse struct {
	TradeID     string    `json:"tradeId"`
	BuyOrderID  string    `json:"buyOrderId"`
	SellOrderID string    `json:"sellOrderId"`
	Symbol      string    `json:"symbol"`
	Price       string    `json:"price"`
	Quantity    string    `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
}

// SubmitOrderResponse carries the final order state and the trades produced.
type SubmitOrderResponse struct {
	OrderID           string          `json:"orderId"`
	Symbol            string          `json:"symbol"`
	Status            string          `json:"status"`
	RemainingQuantity string          `json:"remainingQuantity"`
	Trades            []TradeResponse `json:"trades"`
}

// BookLevelResponse is one aggregated price level in a depth snapshot.
type BookLevelResponse struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Orders   int    `json:"orders"`
}

// BookResponse is the depth snapshot for GET /book.
type BookResponse struct {
	Symbol string              `json:"symbol"`
	Bids   []BookLevelResponse `json:"bids"`
	Asks   []BookLevelResponse `json:"asks"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
