// Package simulator generates synthetic order flow against the gateway and
// demonstrates why the book's exclusive region is required.
package simulator

import (
	"math"
	"math/rand"
	"strconv"
)

const (
	// DefaultSymbol is the instrument every generated order trades.
	DefaultSymbol = "BTC/USD"

	basePrice            = 150.00
	priceVariancePercent = 0.05
	minQuantity          = 1.0
	maxQuantity          = 500.0
)

// OrderRequest is the wire shape of one generated submission.
type OrderRequest struct {
	Symbol   string `json:"symbol"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Type     string `json:"type"`
	Side     string `json:"side"`
}

// Generator produces random orders around a fixed base price. Prices land
// uniformly within ±5% of the base, quantities within [1, 500], both rounded
// to two decimal places; type and side are coin flips.
type Generator struct {
	symbol string
	rnd    *rand.Rand
}

// NewGenerator creates a generator for the given symbol and seed. The
// returned generator is not safe for concurrent use; give each worker its
// own.
func NewGenerator(symbol string, seed int64) *Generator {
	return &Generator{
		symbol: symbol,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next random order.
func (g *Generator) Next() OrderRequest {
	variance := basePrice * priceVariancePercent
	minPrice := basePrice - variance
	maxPrice := basePrice + variance
	price := round2(minPrice + g.rnd.Float64()*(maxPrice-minPrice))

	quantity := round2(minQuantity + g.rnd.Float64()*(maxQuantity-minQuantity))

	orderType := "LIMIT"
	if g.rnd.Intn(2) == 0 {
		orderType = "MARKET"
	}
	side := "BUY"
	if g.rnd.Intn(2) == 0 {
		side = "SELL"
	}

	return OrderRequest{
		Symbol:   g.symbol,
		Price:    formatAmount(price),
		Quantity: formatAmount(quantity),
		Type:     orderType,
		Side:     side,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
