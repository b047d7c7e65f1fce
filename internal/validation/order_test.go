package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/portfoliotracker/backend/internal/api/request"
)

func TestValidateBuyOrder(t *testing.T) {
	valid := request.BuyOrderRequest{
		Ticker:   "AAPL",
		Quantity: 10,
		Price:    decimal.NewFromInt(150),
		Date:     "2026-08-03",
	}

	t.Run("accepts a valid order", func(t *testing.T) {
		assert.NoError(t, ValidateBuyOrder(valid))
	})

	t.Run("accepts a missing date", func(t *testing.T) {
		req := valid
		req.Date = ""
		assert.NoError(t, ValidateBuyOrder(req))
	})

	tests := []struct {
		name   string
		mutate func(*request.BuyOrderRequest)
		field  string
	}{
		{"rejects an empty ticker", func(r *request.BuyOrderRequest) { r.Ticker = "  " }, "ticker"},
		{"rejects an overlong ticker", func(r *request.BuyOrderRequest) { r.Ticker = "ABCDEFGHIJK" }, "ticker"},
		{"rejects zero quantity", func(r *request.BuyOrderRequest) { r.Quantity = 0 }, "quantity"},
		{"rejects negative quantity", func(r *request.BuyOrderRequest) { r.Quantity = -1 }, "quantity"},
		{"rejects zero price", func(r *request.BuyOrderRequest) { r.Price = decimal.Zero }, "price"},
		{"rejects negative price", func(r *request.BuyOrderRequest) { r.Price = decimal.NewFromInt(-1) }, "price"},
		{"rejects a malformed date", func(r *request.BuyOrderRequest) { r.Date = "03-08-2026" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := ValidateBuyOrder(req)
			assert.Error(t, err)

			var verr *Error
			assert.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateSellOrder(t *testing.T) {
	err := ValidateSellOrder(request.SellOrderRequest{
		Ticker:   "AAPL",
		Quantity: 5,
		Price:    decimal.NewFromInt(160),
	})
	assert.NoError(t, err)

	err = ValidateSellOrder(request.SellOrderRequest{Ticker: "AAPL"})
	assert.Error(t, err)
}

func TestValidateCreateTrade(t *testing.T) {
	valid := request.CreateTradeRequest{
		Date:     "2026-08-03",
		Ticker:   "AAPL",
		Quantity: 10,
		Price:    decimal.NewFromInt(150),
		Side:     "BUY",
	}

	t.Run("accepts a valid record", func(t *testing.T) {
		assert.NoError(t, ValidateCreateTrade(valid))
	})

	t.Run("requires the date", func(t *testing.T) {
		req := valid
		req.Date = ""
		var verr *Error
		assert.ErrorAs(t, ValidateCreateTrade(req), &verr)
		assert.Contains(t, verr.Fields, "date")
	})

	t.Run("rejects an unknown side", func(t *testing.T) {
		req := valid
		req.Side = "SHORT"
		var verr *Error
		assert.ErrorAs(t, ValidateCreateTrade(req), &verr)
		assert.Contains(t, verr.Fields, "side")
	})
}

func TestValidateCashAdd(t *testing.T) {
	assert.NoError(t, ValidateCashAdd(request.CashAmountRequest{Amount: decimal.NewFromInt(100)}))
	assert.Error(t, ValidateCashAdd(request.CashAmountRequest{Amount: decimal.Zero}))
	assert.Error(t, ValidateCashAdd(request.CashAmountRequest{Amount: decimal.NewFromInt(-1)}))
}

func TestValidateCashInitialize(t *testing.T) {
	assert.NoError(t, ValidateCashInitialize(request.CashAmountRequest{Amount: decimal.Zero}))
	assert.Error(t, ValidateCashInitialize(request.CashAmountRequest{Amount: decimal.NewFromInt(-1)}))
}
