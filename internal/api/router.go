package api

import (
	"matchbook/internal/matching"
	"matchbook/internal/service"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all gateway routes.
func NewRouter(svc *service.OrderService, book *matching.OrderBook) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handler := NewHandler(svc, book)
	router.POST("/orders", handler.SubmitOrder)
	router.GET("/book", handler.GetBook)

	return router
}
