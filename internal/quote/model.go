package quote

import "github.com/shopspring/decimal"

// chartResponse maps the raw Yahoo Finance chart API response. Only the meta
// block is used; the system never stores historical price series.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				Symbol               string  `json:"symbol"`
				ExchangeName         string  `json:"exchangeName"`
				LongName             string  `json:"longName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// MarketData is the one-day market snapshot returned by the batch
// stock-data endpoint.
type MarketData struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	PreviousClose  decimal.Decimal `json:"previousClose"`
	DayGain        decimal.Decimal `json:"dayGain"`
	DayGainPercent decimal.Decimal `json:"dayGainPercent"`
	DayLow         decimal.Decimal `json:"dayLow"`
	DayHigh        decimal.Decimal `json:"dayHigh"`
	YearLow        decimal.Decimal `json:"yearLow"`
	YearHigh       decimal.Decimal `json:"yearHigh"`
	Volume         int64           `json:"volume"`
}
