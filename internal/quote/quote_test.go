package quote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceOrFallback(t *testing.T) {
	q := Quote{Ticker: "AAPL", Price: decimal.NewFromInt(180)}
	fallback := decimal.NewFromInt(150)

	if got := PriceOrFallback(q, nil, fallback); !got.Equal(q.Price) {
		t.Errorf("Expected quoted price, got %s", got)
	}

	err := &FetchError{Ticker: "AAPL", Err: fmt.Errorf("timeout")}
	if got := PriceOrFallback(Quote{}, err, fallback); !got.Equal(fallback) {
		t.Errorf("Expected fallback price, got %s", got)
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := &FetchError{Ticker: "AAPL", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("Expected FetchError to unwrap to the inner error")
	}

	var fe *FetchError
	if !errors.As(error(err), &fe) {
		t.Error("Expected errors.As to find FetchError")
	}
	if fe.Ticker != "AAPL" {
		t.Errorf("Expected ticker AAPL, got %s", fe.Ticker)
	}
}
