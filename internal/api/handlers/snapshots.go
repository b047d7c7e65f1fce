package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/service"
)

// SnapshotHandler handles HTTP requests for the daily value endpoints.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// List handles GET requests to retrieve daily snapshots within a date range.
// Both bounds are required, in YYYY-MM-DD format.
//
// Endpoint: GET /api/daily-values?start=2026-08-01&end=2026-08-31
// Response: 200 OK with array of DailySnapshot, oldest first
// Error: 400 Bad Request if a bound is missing, malformed, or reversed
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	snapshots, err := h.snapshotService.List(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve daily values", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// SaveToday handles POST requests to record today's snapshot on demand,
// outside the schedule. Rerunning on the same day returns the existing row.
//
// Endpoint: POST /api/daily-values/save-snapshot
// Response: 201 Created with DailySnapshot when a new row was written
// Response: 200 OK with the existing DailySnapshot otherwise
// Error: 500 Internal Server Error if the save fails
func (h *SnapshotHandler) SaveToday(w http.ResponseWriter, r *http.Request) {
	snapshot, created, err := h.snapshotService.SaveTodayIfMissing(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save daily value", err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.RespondJSON(w, status, snapshot)
}
