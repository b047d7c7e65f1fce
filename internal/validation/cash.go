package validation

import (
	"github.com/portfoliotracker/backend/internal/api/request"
)

// ValidateCashAdd validates a cash deposit request. The amount must be
// strictly positive.
func ValidateCashAdd(req request.CashAmountRequest) error {
	errors := make(map[string]string)

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCashInitialize validates a cash initialization request. Zero is
// allowed; resetting to an empty account is a valid starting state.
func ValidateCashInitialize(req request.CashAmountRequest) error {
	errors := make(map[string]string)

	if req.Amount.IsNegative() {
		errors["amount"] = "amount must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
