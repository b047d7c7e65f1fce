package model

import "github.com/shopspring/decimal"

// BuyResult is the consistent snapshot returned after a committed buy.
// All fields reflect the state as of the moment of commit.
type BuyResult struct {
	TotalCost     decimal.Decimal `json:"totalCost"`
	RemainingCash decimal.Decimal `json:"remainingCash"`
	Holding       *Holding        `json:"holding"`
	Trade         Trade           `json:"trade"`
}

// SellResult is the consistent snapshot returned after a committed sell.
// Holding is nil when the sell fully liquidated the position; that is
// documented behaviour, not an omission.
type SellResult struct {
	TotalProceeds decimal.Decimal `json:"totalProceeds"`
	RemainingCash decimal.Decimal `json:"remainingCash"`
	Holding       *Holding        `json:"holding"`
	Trade         Trade           `json:"trade"`
}

// MonthlyPnL holds the realized and unrealized gains attributed to one month.
type MonthlyPnL struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Realized   decimal.Decimal `json:"realized"`
	Unrealized decimal.Decimal `json:"unrealized"`
	FromCache  bool            `json:"fromCache"`
}

// PnLReport is the rolling monthly P&L series plus portfolio-wide totals.
type PnLReport struct {
	Monthly         []MonthlyPnL    `json:"monthlyData"`
	TotalRealized   decimal.Decimal `json:"totalRealized"`
	TotalUnrealized decimal.Decimal `json:"totalUnrealized"`
	TotalPnL        decimal.Decimal `json:"totalPnL"`
}
