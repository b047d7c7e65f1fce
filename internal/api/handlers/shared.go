package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// parseJSON decodes the request body into a value of type T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// respondOrderError maps trade engine failures to HTTP statuses shared by
// the buy and sell endpoints.
func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		response.RespondError(w, http.StatusUnprocessableEntity, "insufficient funds", err.Error())
	case errors.Is(err, apperrors.ErrInsufficientShares):
		response.RespondError(w, http.StatusUnprocessableEntity, "insufficient shares", err.Error())
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		response.RespondError(w, http.StatusNotFound, "no position for ticker", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "failed to execute order", err.Error())
	}
}
