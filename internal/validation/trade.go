package validation

import (
	"fmt"
	"strings"

	"github.com/portfoliotracker/backend/internal/api/request"
)

// ValidTradeSide contains the allowed trade side values.
var ValidTradeSide = map[string]bool{
	"BUY": true, "SELL": true,
}

// ValidateCreateTrade validates a trade history creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - ticker: Non-empty, at most 10 characters
//   - quantity: Must be positive
//   - price: Must be positive
//   - side: Must be BUY or SELL
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else {
		validateDate(errors, "date", req.Date)
	}

	validateTicker(errors, req.Ticker)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	validatePositivePrice(errors, req.Price)

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !ValidTradeSide[req.Side] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTrade validates a trade history update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else {
			validateDate(errors, "date", *req.Date)
		}
	}
	if req.Ticker != nil {
		validateTicker(errors, *req.Ticker)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil {
		validatePositivePrice(errors, *req.Price)
	}
	if req.Side != nil {
		if strings.TrimSpace(*req.Side) == "" {
			errors["side"] = "side is required"
		} else if !ValidTradeSide[*req.Side] {
			errors["side"] = fmt.Sprintf("invalid side: %s", *req.Side)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
