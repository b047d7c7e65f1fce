package validation

import (
	"github.com/portfoliotracker/backend/internal/api/request"
)

// ValidateBuyOrder validates a buy order request.
//
// Required fields:
//   - ticker: Non-empty, at most 10 characters
//   - quantity: Must be positive
//   - price: Must be positive
//
// Optional fields:
//   - date: Must be in YYYY-MM-DD format if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateBuyOrder(req request.BuyOrderRequest) error {
	errors := make(map[string]string)

	validateTicker(errors, req.Ticker)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	validatePositivePrice(errors, req.Price)

	if req.Date != "" {
		validateDate(errors, "date", req.Date)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSellOrder validates a sell order request. The constraints match
// ValidateBuyOrder; whether enough shares exist is checked by the trade
// engine, not here.
func ValidateSellOrder(req request.SellOrderRequest) error {
	return ValidateBuyOrder(request.BuyOrderRequest(req))
}
