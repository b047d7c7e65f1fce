package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/service"
)

// SummaryHandler handles HTTP requests for the monthly summary endpoints.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler with the provided service dependency.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// parseYearMonth reads the {year} and {month} URL parameters.
func parseYearMonth(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// List handles GET requests to retrieve all monthly summaries.
//
// Endpoint: GET /api/monthly-summaries
// Response: 200 OK with array of MonthlySummary, oldest first
// Error: 500 Internal Server Error if retrieval fails
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.summaryService.List(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve monthly summaries", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// ListByYear handles GET requests to retrieve one year's summaries, ordered
// by month.
//
// Endpoint: GET /api/monthly-summaries/year/{year}
// Response: 200 OK with array of MonthlySummary
// Error: 400 Bad Request if the year is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *SummaryHandler) ListByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	summaries, err := h.summaryService.ListByYear(r.Context(), year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve monthly summaries", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// ListLast12 handles GET requests to retrieve the trailing 12 months of
// summaries ending with the current month.
//
// Endpoint: GET /api/monthly-summaries/last-12-months
// Response: 200 OK with array of MonthlySummary, oldest first
// Error: 500 Internal Server Error if retrieval fails
func (h *SummaryHandler) ListLast12(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.summaryService.ListLast12(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve monthly summaries", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// Get handles GET requests to retrieve the summary for one month.
//
// Endpoint: GET /api/monthly-summaries/{year}/{month}
// Response: 200 OK with MonthlySummary
// Error: 400 Bad Request if year or month is malformed
// Error: 404 Not Found if no summary is stored for that month
// Error: 500 Internal Server Error if retrieval fails
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year or month", err.Error())
		return
	}

	summary, err := h.summaryService.Get(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrSummaryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSummaryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve monthly summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// CreateCurrent handles POST requests to compute and store the summary for
// the current month on demand, outside the month-end schedule.
//
// Endpoint: POST /api/monthly-summaries/current-month
// Response: 201 Created with MonthlySummary
// Error: 500 Internal Server Error if computation fails
func (h *SummaryHandler) CreateCurrent(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryService.CreateCurrentMonth(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create monthly summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, summary)
}

// Delete handles DELETE requests to remove a stored summary, forcing the
// next profit and loss read for that month to recompute.
//
// Endpoint: DELETE /api/monthly-summaries/{year}/{month}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if year or month is malformed
// Error: 404 Not Found if no summary is stored for that month
// Error: 500 Internal Server Error if deletion fails
func (h *SummaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year or month", err.Error())
		return
	}

	if err := h.summaryService.Delete(r.Context(), year, month); err != nil {
		if errors.Is(err, apperrors.ErrSummaryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSummaryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete monthly summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
