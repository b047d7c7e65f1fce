package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=1d"

// YahooClient fetches prices from the Yahoo Finance chart API.
type YahooClient struct {
	httpClient *http.Client
}

// NewYahooClient creates a Yahoo Finance client with a bounded request timeout.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetQuote returns the current market price for a ticker. Errors are wrapped
// in *FetchError so callers can degrade per their fallback policy.
func (c *YahooClient) GetQuote(ctx context.Context, ticker string) (Quote, error) {
	resp, err := c.queryChart(ctx, ticker)
	if err != nil {
		return Quote{}, &FetchError{Ticker: ticker, Err: err}
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return Quote{}, &FetchError{Ticker: ticker, Err: fmt.Errorf("no market price returned")}
	}

	return Quote{
		Ticker:   meta.Symbol,
		Price:    decimal.NewFromFloat(meta.RegularMarketPrice),
		Currency: meta.Currency,
	}, nil
}

// GetMarketData returns the richer one-day market snapshot for a ticker,
// used by the batch stock-data endpoint.
func (c *YahooClient) GetMarketData(ctx context.Context, ticker string) (MarketData, error) {
	resp, err := c.queryChart(ctx, ticker)
	if err != nil {
		return MarketData{}, &FetchError{Ticker: ticker, Err: err}
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return MarketData{}, &FetchError{Ticker: ticker, Err: fmt.Errorf("no market price returned")}
	}

	data := MarketData{
		Symbol:        meta.Symbol,
		Name:          meta.LongName,
		Price:         decimal.NewFromFloat(meta.RegularMarketPrice),
		Currency:      meta.Currency,
		PreviousClose: decimal.NewFromFloat(meta.ChartPreviousClose),
		DayLow:        decimal.NewFromFloat(meta.RegularMarketDayLow),
		DayHigh:       decimal.NewFromFloat(meta.RegularMarketDayHigh),
		YearLow:       decimal.NewFromFloat(meta.FiftyTwoWeekLow),
		YearHigh:      decimal.NewFromFloat(meta.FiftyTwoWeekHigh),
		Volume:        meta.RegularMarketVolume,
	}
	if !data.PreviousClose.IsZero() {
		data.DayGain = data.Price.Sub(data.PreviousClose).Round(2)
		data.DayGainPercent = data.DayGain.
			Div(data.PreviousClose).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return data, nil
}

func (c *YahooClient) queryChart(ctx context.Context, ticker string) (chartResponse, error) {
	url := fmt.Sprintf(yahooChartURL, strings.ToUpper(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return chartResponse{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chartResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chartResponse{}, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return chartResponse{}, err
	}
	if parsed.Chart.Error != nil {
		return chartResponse{}, fmt.Errorf("yahoo error: %s", *parsed.Chart.Error)
	}
	if len(parsed.Chart.Result) == 0 {
		return chartResponse{}, fmt.Errorf("no results returned for symbol %s", ticker)
	}

	return parsed, nil
}
