package request

// StockDataRequest is the request body for the batch market data endpoint.
type StockDataRequest struct {
	Tickers []string `json:"tickers"`
}
