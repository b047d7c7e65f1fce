package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/validation"
)

// ValidateUUID is a middleware that rejects requests whose {uuid} URL
// parameter is not a well-formed UUID, before the handler runs.
func ValidateUUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "uuid")
		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid id", err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
