package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfoliotracker/backend/internal/api/response"
	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/insights"
	"github.com/portfoliotracker/backend/internal/news"
	"github.com/portfoliotracker/backend/internal/quote"
	"github.com/portfoliotracker/backend/internal/service"
)

// InsightsHandler handles HTTP requests for AI commentary, both for the
// portfolio as a whole and for a single ticker.
type InsightsHandler struct {
	generator        *insights.Generator
	holdingService   *service.HoldingService
	cashService      *service.CashService
	valuationService *service.ValuationService
	settingsService  *service.SettingsService
	yahoo            *quote.YahooClient
	newsClient       *news.Client
}

// NewInsightsHandler creates a new InsightsHandler with the provided dependencies.
func NewInsightsHandler(
	generator *insights.Generator,
	holdingService *service.HoldingService,
	cashService *service.CashService,
	valuationService *service.ValuationService,
	settingsService *service.SettingsService,
	yahoo *quote.YahooClient,
	newsClient *news.Client,
) *InsightsHandler {
	return &InsightsHandler{
		generator:        generator,
		holdingService:   holdingService,
		cashService:      cashService,
		valuationService: valuationService,
		settingsService:  settingsService,
		yahoo:            yahoo,
		newsClient:       newsClient,
	}
}

// InsightsResponse carries the generated commentary.
type InsightsResponse struct {
	Commentary string `json:"commentary"`
}

// Get handles GET requests to generate a short commentary on the current
// portfolio state.
//
// Endpoint: GET /api/insights
// Response: 200 OK with InsightsResponse
// Error: 409 Conflict if no AI API key has been configured
// Error: 500 Internal Server Error if gathering state fails
// Error: 502 Bad Gateway if the completion call fails
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.generator.Configured() {
		response.RespondError(w, http.StatusConflict, apperrors.ErrInsightsNotConfigured.Error(), "")
		return
	}

	holdings, err := h.holdingService.List(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio", err.Error())
		return
	}

	cash, err := h.cashService.Balance(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve cash balance", err.Error())
		return
	}

	report, err := h.valuationService.MonthlyReport(r.Context(), 7)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute profit and loss", err.Error())
		return
	}

	commentary, err := h.generator.PortfolioCommentary(r.Context(), holdings, cash, report)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsightsNotConfigured) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsightsNotConfigured.Error(), "")
			return
		}
		response.RespondError(w, http.StatusBadGateway, "failed to generate insights", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, InsightsResponse{Commentary: commentary})
}

// TickerNoteResponse carries the generated note for a single stock.
type TickerNoteResponse struct {
	Ticker string `json:"ticker"`
	Note   string `json:"note"`
}

// GetTicker handles GET requests to generate a sentiment note for one stock,
// built from its market data and recent headlines. Headlines are optional;
// without a configured news key the note uses market data alone.
//
// Endpoint: GET /api/insights/{ticker}
// Response: 200 OK with TickerNoteResponse
// Error: 409 Conflict if no AI API key has been configured
// Error: 502 Bad Gateway if the quote source or the completion call fails
func (h *InsightsHandler) GetTicker(w http.ResponseWriter, r *http.Request) {
	if !h.generator.Configured() {
		response.RespondError(w, http.StatusConflict, apperrors.ErrInsightsNotConfigured.Error(), "")
		return
	}

	ticker := chi.URLParam(r, "ticker")

	data, err := h.yahoo.GetMarketData(r.Context(), ticker)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to fetch market data", err.Error())
		return
	}

	var articles []news.Article
	if apiKey, err := h.settingsService.NewsAPIKey(r.Context()); err == nil {
		articles, err = h.newsClient.Headlines(r.Context(), apiKey, ticker, 5)
		if err != nil {
			log.Printf("headline fetch failed for %s, generating without news: %v", ticker, err)
			articles = nil
		}
	}

	note, err := h.generator.TickerNote(r.Context(), data, articles)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to generate ticker note", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, TickerNoteResponse{Ticker: data.Symbol, Note: note})
}
