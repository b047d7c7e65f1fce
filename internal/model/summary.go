package model

import "github.com/shopspring/decimal"

// MonthlySummary is a cached month-end rollup of the portfolio. Summaries are
// derived data: they can be rebuilt from the trade history at any time, and
// the valuation engine only prefers them for months that have already closed.
type MonthlySummary struct {
	ID                    string          `json:"id"`
	Year                  int             `json:"year"`
	Month                 int             `json:"month"`
	TotalValue            decimal.Decimal `json:"totalValue"`
	MonthlyGain           decimal.Decimal `json:"monthlyGain"`
	MonthlyGainPercentage decimal.Decimal `json:"monthlyGainPercentage"`
	RealizedGain          decimal.Decimal `json:"realizedGain"`
	UnrealizedGain        decimal.Decimal `json:"unrealizedGain"`
}
