package request

import "github.com/shopspring/decimal"

// CreateHoldingRequest is the body for POST /api/portfolio. It imports a
// position directly without a corresponding trade.
type CreateHoldingRequest struct {
	Ticker       string          `json:"ticker"`
	Quantity     int64           `json:"quantity"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	LastAcquired string          `json:"lastAcquired,omitempty"`
}

// UpdateHoldingRequest is the body for PUT /api/portfolio/{uuid}.
// All fields are optional; absent fields keep their stored values.
type UpdateHoldingRequest struct {
	Ticker       *string          `json:"ticker,omitempty"`
	Quantity     *int64           `json:"quantity,omitempty"`
	AverageCost  *decimal.Decimal `json:"averageCost,omitempty"`
	LastAcquired *string          `json:"lastAcquired,omitempty"`
}
