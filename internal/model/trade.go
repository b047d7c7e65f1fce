package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade.
type TradeSide string

// Allowed trade sides.
const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Trade is an immutable record of an executed buy or sell. The trade history
// is append-only and is the source of truth from which realized gains are
// reconstructed; the engine never mutates a trade after creation (corrections
// go through the administrative update/delete endpoints).
type Trade struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Ticker    string          `json:"ticker"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Side      TradeSide       `json:"side"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// TotalValue returns Price x Quantity.
func (t Trade) TotalValue() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}
