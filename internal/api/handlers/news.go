package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/portfoliotracker/backend/internal/api/request"
	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/news"
	"github.com/portfoliotracker/backend/internal/service"
)

// NewsHandler handles HTTP requests for market headlines and the stored
// news API key.
type NewsHandler struct {
	newsClient      *news.Client
	settingsService *service.SettingsService
}

// NewNewsHandler creates a new NewsHandler with the provided dependencies.
func NewNewsHandler(newsClient *news.Client, settingsService *service.SettingsService) *NewsHandler {
	return &NewsHandler{
		newsClient:      newsClient,
		settingsService: settingsService,
	}
}

// Headlines handles GET requests to retrieve recent articles for a ticker.
//
// Endpoint: GET /api/news/{ticker}?limit=10
// Response: 200 OK with array of Article
// Error: 400 Bad Request if the ticker is blank
// Error: 409 Conflict if no news API key has been configured
// Error: 502 Bad Gateway if the news source fails
func (h *NewsHandler) Headlines(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(chi.URLParam(r, "ticker"))
	if query == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	apiKey, err := h.settingsService.NewsAPIKey(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNewsNotConfigured) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrNewsNotConfigured.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to load news configuration", err.Error())
		return
	}

	articles, err := h.newsClient.Headlines(r.Context(), apiKey, query, limit)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to fetch news", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, articles)
}

// SetAPIKey handles PUT requests to store the news provider API key. The key
// is encrypted before it reaches the database.
//
// Endpoint: PUT /api/news/api-key
// Request Body: NewsAPIKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the body is invalid or the key is empty
// Error: 500 Internal Server Error if storage fails
func (h *NewsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.NewsAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.settingsService.SetNewsAPIKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store news api key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
