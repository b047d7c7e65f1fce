package handlers

import (
	"net/http"
	"strings"

	"github.com/portfoliotracker/backend/internal/api/request"
	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/quote"
)

// StockDataHandler handles HTTP requests for live market data lookups.
type StockDataHandler struct {
	yahoo *quote.YahooClient
}

// NewStockDataHandler creates a new StockDataHandler with the provided client dependency.
func NewStockDataHandler(yahoo *quote.YahooClient) *StockDataHandler {
	return &StockDataHandler{yahoo: yahoo}
}

// StockDataEntry pairs a ticker with its snapshot, or with the fetch failure
// when the quote source could not serve it.
type StockDataEntry struct {
	Ticker string            `json:"ticker"`
	Data   *quote.MarketData `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Batch handles POST requests to retrieve market data snapshots for a set of
// tickers. Failures are reported per ticker; one bad symbol does not fail
// the rest of the batch.
//
// Endpoint: POST /api/stock-data
// Request Body: StockDataRequest (tickers)
// Response: 200 OK with array of StockDataEntry, one per requested ticker
// Error: 400 Bad Request if the body is invalid or no tickers are given
func (h *StockDataHandler) Batch(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.StockDataRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tickers := make([]string, 0, len(req.Tickers))
	for _, t := range req.Tickers {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		response.RespondError(w, http.StatusBadRequest, "at least one ticker is required", "")
		return
	}

	entries := make([]StockDataEntry, 0, len(tickers))
	for _, ticker := range tickers {
		entry := StockDataEntry{Ticker: ticker}
		data, err := h.yahoo.GetMarketData(r.Context(), ticker)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Data = &data
		}
		entries = append(entries, entry)
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
