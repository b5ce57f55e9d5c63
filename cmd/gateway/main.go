package main

import (
	"os"

	"matchbook/internal/api"
	"matchbook/internal/ledger"
	"matchbook/internal/matching"
	"matchbook/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	addr := getenv("APP_ADDR", ":8080")
	symbol := getenv("BOOK_SYMBOL", "BTC/USD")
	dsn := os.Getenv("TRADE_DB_DSN")

	var store ledger.Store
	if dsn != "" {
		pgStore, err := ledger.OpenPostgres(dsn)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open trade database")
		}
		store = pgStore
		logger.Info().Msg("trade ledger backed by postgres")
	} else {
		store = ledger.NewMemoryStore()
		logger.Warn().Msg("TRADE_DB_DSN not set, trades held in memory only")
	}
	defer store.Close()

	book := matching.NewOrderBook(symbol, logger)
	svc := service.NewOrderService(book, store, logger)
	router := api.NewRouter(svc, book)

	logger.Info().Str("addr", addr).Str("symbol", symbol).Msg("gateway listening")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
