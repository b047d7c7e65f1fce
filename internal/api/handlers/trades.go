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

// TradeHandler handles HTTP requests for the trade history endpoints.
// Create, update, and delete here touch only the history record; cash and
// holdings stay as they are. Orders that move money go through /buy and /sell.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// List handles GET requests to retrieve the full trade history, most recent
// first.
//
// Endpoint: GET /api/trade-history
// Response: 200 OK with array of Trade
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeService.List(r.Context(), "", "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// ListByTicker handles GET requests to retrieve the history for one ticker,
// most recent first.
//
// Endpoint: GET /api/trade-history/ticker/{ticker}
// Response: 200 OK with array of Trade
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) ListByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	trades, err := h.tradeService.List(r.Context(), ticker, "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// ListBySide handles GET requests to retrieve all buys or all sells, most
// recent first.
//
// Endpoint: GET /api/trade-history/type/{side}
// Response: 200 OK with array of Trade
// Error: 400 Bad Request if the side is not BUY or SELL
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) ListBySide(w http.ResponseWriter, r *http.Request) {
	side := model.TradeSide(chi.URLParam(r, "side"))

	if !validation.ValidTradeSide[string(side)] {
		response.RespondError(w, http.StatusBadRequest, "invalid trade side", string(side))
		return
	}

	trades, err := h.tradeService.List(r.Context(), "", side)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// Get handles GET requests to retrieve a single trade by ID.
//
// Endpoint: GET /api/trade-history/{uuid}
// Response: 200 OK with Trade
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if no trade has that ID
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	trade, err := h.tradeService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// Create handles POST requests to append a raw history record.
//
// Endpoint: POST /api/trade-history
// Request Body: CreateTradeRequest (date, ticker, quantity, price, side)
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	trade, err := h.tradeService.Record(r.Context(), model.Trade{
		Date:     date,
		Ticker:   req.Ticker,
		Quantity: req.Quantity,
		Price:    req.Price,
		Side:     model.TradeSide(req.Side),
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// Update handles PUT requests to correct an existing history record.
//
// Endpoint: PUT /api/trade-history/{uuid}
// Request Body: UpdateTradeRequest (all fields optional)
// Response: 200 OK with updated Trade
// Error: 400 Bad Request if the ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if no trade has that ID
// Error: 500 Internal Server Error if the update fails
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade", err.Error())
		return
	}

	if req.Date != nil {
		trade.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.Ticker != nil {
		trade.Ticker = *req.Ticker
	}
	if req.Quantity != nil {
		trade.Quantity = *req.Quantity
	}
	if req.Price != nil {
		trade.Price = *req.Price
	}
	if req.Side != nil {
		trade.Side = model.TradeSide(*req.Side)
	}

	updated, err := h.tradeService.Update(r.Context(), trade)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE requests to remove a history record.
//
// Endpoint: DELETE /api/trade-history/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if no trade has that ID
// Error: 500 Internal Server Error if deletion fails
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.tradeService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
