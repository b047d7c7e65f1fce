package validation

import (
	"github.com/portfoliotracker/backend/internal/api/request"
)

// ValidateCreateHolding validates a direct position import request.
//
// Required fields:
//   - ticker: Non-empty, at most 10 characters
//   - quantity: Must be positive
//   - averageCost: Must be positive
//
// Optional fields:
//   - lastAcquired: Must be in YYYY-MM-DD format if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	errors := make(map[string]string)

	validateTicker(errors, req.Ticker)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if !req.AverageCost.IsPositive() {
		errors["averageCost"] = "averageCost must be positive"
	}

	if req.LastAcquired != "" {
		validateDate(errors, "lastAcquired", req.LastAcquired)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateHolding validates a position update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateHolding(req request.UpdateHoldingRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil {
		validateTicker(errors, *req.Ticker)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.AverageCost != nil && !req.AverageCost.IsPositive() {
		errors["averageCost"] = "averageCost must be positive"
	}
	if req.LastAcquired != nil {
		validateDate(errors, "lastAcquired", *req.LastAcquired)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
