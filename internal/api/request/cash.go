package request

import "github.com/shopspring/decimal"

// CashAmountRequest is the body for POST /api/cash/add and
// POST /api/cash/initialize.
type CashAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
