package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/portfoliotracker/backend/internal/api/request"
	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/service"
	"github.com/portfoliotracker/backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for the portfolio position endpoints.
type PortfolioHandler struct {
	holdingService *service.HoldingService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(holdingService *service.HoldingService) *PortfolioHandler {
	return &PortfolioHandler{
		holdingService: holdingService,
	}
}

// List handles GET requests to retrieve all open positions.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Holding
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.List(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// Stats handles GET requests to retrieve position counts and total book value.
//
// Endpoint: GET /api/portfolio/stats
// Response: 200 OK with PortfolioStats
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.holdingService.Stats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Get handles GET requests to retrieve a single position by ID.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Holding
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if no position has that ID
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	holding, err := h.holdingService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// Create handles POST requests to import a position directly, without a
// corresponding trade. Intended for bringing an existing portfolio in.
//
// Endpoint: POST /api/portfolio
// Request Body: CreateHoldingRequest (ticker, quantity, averageCost, optional lastAcquired)
// Response: 201 Created with Holding
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding := model.Holding{
		Ticker:      req.Ticker,
		Quantity:    req.Quantity,
		AverageCost: req.AverageCost,
	}
	if req.LastAcquired != "" {
		holding.LastAcquired, _ = time.Parse("2006-01-02", req.LastAcquired)
	}

	created, err := h.holdingService.Create(r.Context(), holding)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

// Update handles PUT requests to modify an existing position.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdateHoldingRequest (all fields optional)
// Response: 200 OK with updated Holding
// Error: 400 Bad Request if the ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if no position has that ID
// Error: 500 Internal Server Error if the update fails
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding, err := h.holdingService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve holding", err.Error())
		return
	}

	if req.Ticker != nil {
		holding.Ticker = *req.Ticker
	}
	if req.Quantity != nil {
		holding.Quantity = *req.Quantity
	}
	if req.AverageCost != nil {
		holding.AverageCost = *req.AverageCost
	}
	if req.LastAcquired != nil {
		holding.LastAcquired, _ = time.Parse("2006-01-02", *req.LastAcquired)
	}

	updated, err := h.holdingService.Update(r.Context(), holding)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE requests to remove a position.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if no position has that ID
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.holdingService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
