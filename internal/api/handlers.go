package api

import (
	"net/http"
	"strconv"

	"matchbook/internal/fixedpoint"
	"matchbook/internal/matching"
	"matchbook/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultBookDepth = 20

// Handler handles HTTP requests for the order gateway.
type Handler struct {
	svc  *service.OrderService
	book *matching.OrderBook
}

// NewHandler creates a new gateway handler.
func NewHandler(svc *service.OrderService, book *matching.OrderBook) *Handler {
	return &Handler{svc: svc, book: book}
}

// SubmitOrder handles POST /orders.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.svc.Submit(
		c.Request.Context(),
		req.Symbol,
		req.Price.String(),
		req.Quantity.String(),
		req.Type,
		req.Side,
	)
	if err != nil {
		status, resp := mapError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, buildSubmitResponse(result))
}

// GetBook handles GET /book, returning aggregated depth for both sides.
func (h *Handler) GetBook(c *gin.Context) {
	depth := defaultBookDepth
	if raw := c.Query("depth"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "depth must be a positive integer"})
			return
		}
		depth = v
	}

	bids, asks := h.book.Depth(depth)
	c.JSON(http.StatusOK, BookResponse{
		Symbol: h.book.Symbol(),
		Bids:   buildLevels(bids),
		Asks:   buildLevels(asks),
	})
}

func buildSubmitResponse(result service.SubmitResult) SubmitOrderResponse {
	trades := make([]TradeResponse, 0, len(result.Trades))
	for _, t := range result.Trades {
		trades = append(trades, TradeResponse{
			TradeID:     t.ID,
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			Symbol:      t.Symbol,
			Price:       fixedpoint.Format(t.Price),
			Quantity:    fixedpoint.Format(t.Quantity),
			Timestamp:   t.ExecutedAt,
			Type:        string(t.Type),
		})
	}

	return SubmitOrderResponse{
		OrderID:           result.Order.ID,
		Symbol:            result.Order.Symbol,
		Status:            string(result.Order.Status),
		RemainingQuantity: fixedpoint.Format(result.Order.RemainingQty),
		Trades:            trades,
	}
}

func buildLevels(levels []matching.Level) []BookLevelResponse {
	out := make([]BookLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, BookLevelResponse{
			Price:    fixedpoint.Format(l.Price),
			Quantity: fixedpoint.Format(l.Quantity),
			Orders:   l.Orders,
		})
	}
	return out
}
