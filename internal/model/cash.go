package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount is the single cash balance backing all trades. There is exactly
// one row per ledger (id = 1); it is created lazily with a zero balance the
// first time cash is touched.
type CashAccount struct {
	ID          int64           `json:"id"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
