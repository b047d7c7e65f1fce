package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/model"
)

// MakeID returns a fresh UUID string for test rows.
func MakeID() string {
	return uuid.New().String()
}

// Money parses a decimal literal, failing the test on malformed input.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Failed to parse decimal %q: %v", s, err)
	}
	return d
}

// Date parses a YYYY-MM-DD literal, failing the test on malformed input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", s, err)
	}
	return d
}

// SeedCash writes the cash account row with the given balance.
func SeedCash(t *testing.T, db *sql.DB, balance decimal.Decimal) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO cash_account (id, balance, last_updated)
		 VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET balance = excluded.balance`,
		balance, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to seed cash account: %v", err)
	}
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade().
//	    WithTicker("AAPL").
//	    WithQuantity(10).
//	    WithPrice("150").
//	    OnDate("2026-01-05").
//	    Build(t, db)
type TradeBuilder struct {
	ID       string
	Date     time.Time
	Ticker   string
	Quantity int64
	Price    decimal.Decimal
	Side     model.TradeSide
}

// NewTrade creates a TradeBuilder with sensible defaults.
func NewTrade() *TradeBuilder {
	return &TradeBuilder{
		ID:       MakeID(),
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Ticker:   "AAPL",
		Quantity: 10,
		Price:    decimal.NewFromInt(150),
		Side:     model.TradeSideBuy,
	}
}

// WithTicker sets a custom ticker.
func (b *TradeBuilder) WithTicker(ticker string) *TradeBuilder {
	b.Ticker = ticker
	return b
}

// WithQuantity sets a custom quantity.
func (b *TradeBuilder) WithQuantity(quantity int64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets a custom price from a decimal literal.
func (b *TradeBuilder) WithPrice(price string) *TradeBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// OnDate sets a custom trade date from a YYYY-MM-DD literal.
func (b *TradeBuilder) OnDate(date string) *TradeBuilder {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	b.Date = d
	return b
}

// AsSell marks the trade as a sale.
func (b *TradeBuilder) AsSell() *TradeBuilder {
	b.Side = model.TradeSideSell
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	createdAt := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO trade (id, date, ticker, quantity, price, side, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Date.Format("2006-01-02"), b.Ticker, b.Quantity, b.Price, b.Side,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:        b.ID,
		Date:      b.Date,
		Ticker:    b.Ticker,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Side:      b.Side,
		CreatedAt: createdAt,
	}
}

// HoldingBuilder provides a fluent interface for creating test holdings.
type HoldingBuilder struct {
	ID           string
	Ticker       string
	Quantity     int64
	AverageCost  decimal.Decimal
	LastAcquired time.Time
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		ID:           MakeID(),
		Ticker:       "AAPL",
		Quantity:     10,
		AverageCost:  decimal.NewFromInt(150),
		LastAcquired: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

// WithTicker sets a custom ticker.
func (b *HoldingBuilder) WithTicker(ticker string) *HoldingBuilder {
	b.Ticker = ticker
	return b
}

// WithQuantity sets a custom quantity.
func (b *HoldingBuilder) WithQuantity(quantity int64) *HoldingBuilder {
	b.Quantity = quantity
	return b
}

// WithAverageCost sets a custom average cost from a decimal literal.
func (b *HoldingBuilder) WithAverageCost(cost string) *HoldingBuilder {
	b.AverageCost = decimal.RequireFromString(cost)
	return b
}

// AcquiredOn sets the last acquisition date from a YYYY-MM-DD literal.
func (b *HoldingBuilder) AcquiredOn(date string) *HoldingBuilder {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	b.LastAcquired = d
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO holding (id, ticker, quantity, average_cost, last_acquired)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Ticker, b.Quantity, b.AverageCost, b.LastAcquired.Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:           b.ID,
		Ticker:       b.Ticker,
		Quantity:     b.Quantity,
		AverageCost:  b.AverageCost,
		LastAcquired: b.LastAcquired,
	}
}
