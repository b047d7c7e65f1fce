package handlers

import (
	"net/http"
	"strconv"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/service"
)

// PnLHandler handles HTTP requests for the profit and loss endpoints.
type PnLHandler struct {
	valuationService *service.ValuationService
}

// NewPnLHandler creates a new PnLHandler with the provided service dependency.
func NewPnLHandler(valuationService *service.ValuationService) *PnLHandler {
	return &PnLHandler{
		valuationService: valuationService,
	}
}

// Monthly handles GET requests to retrieve per-month profit and loss for the
// trailing months plus running totals. Past months come from the cached
// summaries when present; the rest are computed live.
//
// Endpoint: GET /api/pnl/monthly?months=7
// Response: 200 OK with PnLReport
// Error: 400 Bad Request if the months parameter is not a positive integer
// Error: 500 Internal Server Error if computation fails
func (h *PnLHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	months := 7
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid months parameter", raw)
			return
		}
		months = parsed
	}

	report, err := h.valuationService.MonthlyReport(r.Context(), months)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute profit and loss", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
