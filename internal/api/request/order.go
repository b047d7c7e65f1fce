package request

import "github.com/shopspring/decimal"

// BuyOrderRequest is the body for POST /api/buy.
type BuyOrderRequest struct {
	Ticker   string          `json:"ticker"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date,omitempty"`
}

// SellOrderRequest is the body for POST /api/sell.
type SellOrderRequest struct {
	Ticker   string          `json:"ticker"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date,omitempty"`
}
