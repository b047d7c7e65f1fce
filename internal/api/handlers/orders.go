package handlers

import (
	"net/http"
	"time"

	"github.com/portfoliotracker/backend/internal/api/request"
	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/service"
	"github.com/portfoliotracker/backend/internal/validation"
)

// OrderHandler handles HTTP requests for the buy and sell endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type OrderHandler struct {
	transactionService *service.TransactionService
}

// NewOrderHandler creates a new OrderHandler with the provided service dependency.
func NewOrderHandler(transactionService *service.TransactionService) *OrderHandler {
	return &OrderHandler{
		transactionService: transactionService,
	}
}

// parseOrderDate converts an optional YYYY-MM-DD string to a time. A zero
// time tells the engine to default to today.
func parseOrderDate(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	// Validation already checked the format.
	t, _ := time.Parse("2006-01-02", date)
	return t
}

// Buy handles POST requests to purchase shares.
// Deducts the total cost from cash, updates the position, and appends the
// trade to history, all in one transaction.
//
// Endpoint: POST /api/buy
// Request Body: BuyOrderRequest (ticker, quantity, price, optional date)
// Response: 201 Created with BuyResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if cash does not cover the cost
// Error: 500 Internal Server Error if execution fails
func (h *OrderHandler) Buy(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BuyOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBuyOrder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.transactionService.Buy(r.Context(), req.Ticker, req.Quantity, req.Price, parseOrderDate(req.Date))
	if err != nil {
		respondOrderError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// Sell handles POST requests to dispose of shares.
// Credits the proceeds to cash, reduces or removes the position, and appends
// the trade to history, all in one transaction.
//
// Endpoint: POST /api/sell
// Request Body: SellOrderRequest (ticker, quantity, price, optional date)
// Response: 201 Created with SellResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if no position exists for the ticker
// Error: 422 Unprocessable Entity if the position is smaller than the order
// Error: 500 Internal Server Error if execution fails
func (h *OrderHandler) Sell(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SellOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSellOrder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.transactionService.Sell(r.Context(), req.Ticker, req.Quantity, req.Price, parseOrderDate(req.Date))
	if err != nil {
		respondOrderError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}
