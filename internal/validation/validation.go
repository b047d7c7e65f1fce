package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

const maxTickerLength = 10

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// validateTicker fills errors with ticker problems, if any.
func validateTicker(errors map[string]string, ticker string) {
	trimmed := strings.TrimSpace(ticker)
	if trimmed == "" {
		errors["ticker"] = "ticker is required"
	} else if len(trimmed) > maxTickerLength {
		errors["ticker"] = fmt.Sprintf("ticker must be at most %d characters", maxTickerLength)
	}
}

// validateDate fills errors when the date is not in YYYY-MM-DD format.
func validateDate(errors map[string]string, field, date string) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		errors[field] = err.Error()
	}
}

// validatePositivePrice fills errors when the price is zero or negative.
func validatePositivePrice(errors map[string]string, price decimal.Decimal) {
	if !price.IsPositive() {
		errors["price"] = "price must be positive"
	}
}
