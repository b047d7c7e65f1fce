package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents an open position in a single ticker. At most one holding
// exists per ticker; it is removed once its quantity reaches zero.
//
// AverageCost is the quantity-weighted mean purchase price across all buys
// feeding the position, rounded to 2 decimal places. Sells reduce Quantity
// only and never touch AverageCost, which keeps realized-gain attribution
// correct on partial sells.
type Holding struct {
	ID           string          `json:"id"`
	Ticker       string          `json:"ticker"`
	Quantity     int64           `json:"quantity"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	LastAcquired time.Time       `json:"lastAcquired"`
}

// BookValue returns Quantity x AverageCost, the cost basis of the position.
func (h Holding) BookValue() decimal.Decimal {
	return h.AverageCost.Mul(decimal.NewFromInt(h.Quantity))
}

// PortfolioStats summarises the open positions.
type PortfolioStats struct {
	Positions      int             `json:"positions"`
	TotalBookValue decimal.Decimal `json:"totalBookValue"`
}
