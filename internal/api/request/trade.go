package request

import "github.com/shopspring/decimal"

// CreateTradeRequest is the body for POST /api/trade-history. It appends a
// raw history record without moving cash or holdings.
type CreateTradeRequest struct {
	Date     string          `json:"date"`
	Ticker   string          `json:"ticker"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Side     string          `json:"side"`
}

// UpdateTradeRequest is the body for PUT /api/trade-history/{uuid}.
// All fields are optional; absent fields keep their stored values.
type UpdateTradeRequest struct {
	Date     *string          `json:"date,omitempty"`
	Ticker   *string          `json:"ticker,omitempty"`
	Quantity *int64           `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Side     *string          `json:"side,omitempty"`
}
