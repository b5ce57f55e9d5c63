// Package ledger persists executed trades. Persistence is best effort and
// always happens after the matching call has returned; matching correctness
// never depends on it.
package ledger

import (
	"context"
	"time"

	"matchbook/internal/fixedpoint"
	"matchbook/internal/matching"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store is the trade persistence contract consumed by the order service.
type Store interface {
	// SaveTrades persists the trades produced by one ProcessOrder call.
	SaveTrades(ctx context.Context, trades []matching.Trade) error
	Close() error
}

// TradeRecord is the relational shape of an executed trade.
type TradeRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	BuyOrderID  string    `gorm:"size:36;not null"`
	SellOrderID string    `gorm:"size:36;not null"`
	Symbol      string    `gorm:"size:20;not null"`
	Price       string    `gorm:"type:numeric(18,8);not null"`
	Quantity    string    `gorm:"type:numeric(18,8);not null"`
	TradeType   string    `gorm:"size:16;not null"`
	ExecutedAt  time.Time `gorm:"index;not null"`
}

// TableName implements the gorm naming override.
func (TradeRecord) TableName() string { return "trades" }

// PostgresStore writes trades to a Postgres trades table.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to Postgres with the given DSN and ensures the
// trades table exists.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&TradeRecord{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// SaveTrades inserts one row per trade.
func (s *PostgresStore) SaveTrades(ctx context.Context, trades []matching.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	records := make([]TradeRecord, 0, len(trades))
	for _, t := range trades {
		records = append(records, toRecord(t))
	}
	return s.db.WithContext(ctx).Create(&records).Error
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(t matching.Trade) TradeRecord {
	return TradeRecord{
		ID:          t.ID,
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Symbol:      t.Symbol,
		Price:       fixedpoint.Format(t.Price),
		Quantity:    fixedpoint.Format(t.Quantity),
		TradeType:   string(t.Type),
		ExecutedAt:  t.ExecutedAt,
	}
}
