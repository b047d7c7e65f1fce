package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain entity errors represent missing entities in the system.
var (
	// ErrHoldingNotFound indicates that no open position exists for the ticker or id.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTradeNotFound indicates that a trade record with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrSnapshotNotFound indicates no daily snapshot exists for the requested date.
	ErrSnapshotNotFound = errors.New("daily snapshot not found")

	// ErrSummaryNotFound indicates no monthly summary exists for the year/month pair.
	ErrSummaryNotFound = errors.New("monthly summary not found")

	// ErrSettingNotFound indicates an application setting has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business rule errors. Buy/sell rejections carry the required/available
// numbers so the presentation layer can show them to the user.
var (
	// ErrInsufficientFunds indicates a buy exceeds the available cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares indicates a sell exceeds the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrNegativeAmount indicates an amount field has an invalid non-positive value.
	ErrNegativeAmount = errors.New("amount must be positive")

	// ErrInvalidDateRange indicates the provided date range is invalid.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Collaborator errors.
var (
	// ErrInsightsNotConfigured indicates the AI insight service has no API key set.
	ErrInsightsNotConfigured = errors.New("insights service not configured")

	// ErrNewsNotConfigured indicates no news API key has been stored.
	ErrNewsNotConfigured = errors.New("news API key not configured")
)

// InsufficientFundsError rejects a buy whose total cost exceeds the cash
// balance. It unwraps to ErrInsufficientFunds.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// InsufficientSharesError rejects a sell whose quantity exceeds the held
// quantity. It unwraps to ErrInsufficientShares.
type InsufficientSharesError struct {
	Ticker    string
	Requested int64
	Available int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s: requested %d, available %d",
		e.Ticker, e.Requested, e.Available)
}

func (e *InsufficientSharesError) Unwrap() error { return ErrInsufficientShares }
