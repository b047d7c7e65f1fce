// Package quote defines the market price boundary. The valuation engine only
// depends on the Provider interface; the Yahoo implementation lives alongside
// it. Quote fetches are best-effort: a failure degrades to a caller-supplied
// fallback price, it never fails a whole valuation.
package quote

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote is a current market price for a ticker.
type Quote struct {
	Ticker   string          `json:"ticker"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// Provider fetches current market prices. Implementations block on I/O and
// perform no retries; degradation policy is the caller's concern.
type Provider interface {
	GetQuote(ctx context.Context, ticker string) (Quote, error)
}

// FetchError wraps an upstream quote failure for a specific ticker.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("quote fetch failed for %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PriceOrFallback returns the quoted price, or fallback when the fetch
// failed. This is the degradation combinator used by the valuation engine:
// falling back to a holding's average cost makes the position contribute
// zero unrealized gain instead of failing the computation.
func PriceOrFallback(q Quote, err error, fallback decimal.Decimal) decimal.Decimal {
	if err != nil {
		return fallback
	}
	return q.Price
}
