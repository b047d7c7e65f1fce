package testutil

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/quote"
)

// StaticQuotes is a quote.Provider backed by a fixed price table. Tickers
// missing from the table fail with a *quote.FetchError, mimicking a source
// outage for just those symbols.
type StaticQuotes struct {
	Prices map[string]decimal.Decimal
}

// NewStaticQuotes builds a provider from ticker/price-literal pairs.
//
// Example usage:
//
//	quotes := testutil.NewStaticQuotes(map[string]string{"AAPL": "180.50"})
func NewStaticQuotes(prices map[string]string) *StaticQuotes {
	table := make(map[string]decimal.Decimal, len(prices))
	for ticker, price := range prices {
		table[ticker] = decimal.RequireFromString(price)
	}
	return &StaticQuotes{Prices: table}
}

// GetQuote implements quote.Provider.
func (s *StaticQuotes) GetQuote(_ context.Context, ticker string) (quote.Quote, error) {
	price, ok := s.Prices[ticker]
	if !ok {
		return quote.Quote{}, &quote.FetchError{Ticker: ticker, Err: fmt.Errorf("no price for %s", ticker)}
	}
	return quote.Quote{Ticker: ticker, Price: price, Currency: "USD"}, nil
}

// FailingQuotes is a quote.Provider that fails for every ticker.
type FailingQuotes struct{}

// GetQuote implements quote.Provider.
func (FailingQuotes) GetQuote(_ context.Context, ticker string) (quote.Quote, error) {
	return quote.Quote{}, &quote.FetchError{Ticker: ticker, Err: fmt.Errorf("quote source unavailable")}
}
