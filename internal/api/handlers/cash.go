package handlers

import (
	"net/http"

	"github.com/portfoliotracker/backend/internal/api/request"
	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/service"
	"github.com/portfoliotracker/backend/internal/validation"
)

// CashHandler handles HTTP requests for the cash account endpoints.
type CashHandler struct {
	cashService *service.CashService
}

// NewCashHandler creates a new CashHandler with the provided service dependency.
func NewCashHandler(cashService *service.CashService) *CashHandler {
	return &CashHandler{
		cashService: cashService,
	}
}

// Get handles GET requests to retrieve the cash account.
// A portfolio with no account yet reads as a zero balance.
//
// Endpoint: GET /api/cash
// Response: 200 OK with CashAccount
// Error: 500 Internal Server Error if retrieval fails
func (h *CashHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.cashService.Account(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve cash account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// Add handles POST requests to deposit cash.
//
// Endpoint: POST /api/cash/add
// Request Body: CashAmountRequest (amount, strictly positive)
// Response: 200 OK with updated CashAccount
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *CashHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CashAmountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCashAdd(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.cashService.Add(r.Context(), req.Amount)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to add cash", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// Initialize handles POST requests to set the balance to an exact amount,
// seeding or resetting the simulation.
//
// Endpoint: POST /api/cash/initialize
// Request Body: CashAmountRequest (amount, zero or positive)
// Response: 200 OK with CashAccount
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *CashHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CashAmountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCashInitialize(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.cashService.Initialize(r.Context(), req.Amount)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to initialize cash", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}
