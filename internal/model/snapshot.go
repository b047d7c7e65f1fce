package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySnapshot is a persisted point-in-time total portfolio value for a
// calendar date. Creation is idempotent: the scheduled job never overwrites
// an existing snapshot for the same date.
type DailySnapshot struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	InvestmentsValue decimal.Decimal `json:"investmentsValue"`
	CashValue        decimal.Decimal `json:"cashValue"`
}
