package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/portfoliotracker/backend/internal/api/handlers"
	custommiddleware "github.com/portfoliotracker/backend/internal/api/middleware"
	"github.com/portfoliotracker/backend/internal/config"
	"github.com/portfoliotracker/backend/internal/insights"
	"github.com/portfoliotracker/backend/internal/news"
	"github.com/portfoliotracker/backend/internal/quote"
	"github.com/portfoliotracker/backend/internal/service"
)

// Services bundles the service dependencies the router hands to handlers.
type Services struct {
	Cash        *service.CashService
	Holdings    *service.HoldingService
	Trades      *service.TradeService
	Transaction *service.TransactionService
	Valuation   *service.ValuationService
	Snapshots   *service.SnapshotService
	Summaries   *service.SummaryService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, svcs Services, yahoo *quote.YahooClient, newsClient *news.Client, generator *insights.Generator, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		orderHandler := handlers.NewOrderHandler(svcs.Transaction)
		r.Post("/buy", orderHandler.Buy)
		r.Post("/sell", orderHandler.Sell)

		r.Route("/cash", func(r chi.Router) {
			cashHandler := handlers.NewCashHandler(svcs.Cash)
			r.Get("/", cashHandler.Get)
			r.Post("/add", cashHandler.Add)
			r.Post("/initialize", cashHandler.Initialize)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Holdings)
			r.Get("/", portfolioHandler.List)
			r.Get("/stats", portfolioHandler.Stats)
			r.Post("/", portfolioHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUID)
				r.Get("/", portfolioHandler.Get)
				r.Put("/", portfolioHandler.Update)
				r.Delete("/", portfolioHandler.Delete)
			})
		})

		r.Route("/trade-history", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(svcs.Trades)
			r.Get("/", tradeHandler.List)
			r.Post("/", tradeHandler.Create)
			r.Get("/ticker/{ticker}", tradeHandler.ListByTicker)
			r.Get("/type/{side}", tradeHandler.ListBySide)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUID)
				r.Get("/", tradeHandler.Get)
				r.Put("/", tradeHandler.Update)
				r.Delete("/", tradeHandler.Delete)
			})
		})

		pnlHandler := handlers.NewPnLHandler(svcs.Valuation)
		r.Get("/pnl/monthly", pnlHandler.Monthly)

		r.Route("/daily-values", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svcs.Snapshots)
			r.Get("/", snapshotHandler.List)
			r.Post("/save-snapshot", snapshotHandler.SaveToday)
		})

		r.Route("/monthly-summaries", func(r chi.Router) {
			summaryHandler := handlers.NewSummaryHandler(svcs.Summaries)
			r.Get("/", summaryHandler.List)
			r.Get("/year/{year}", summaryHandler.ListByYear)
			r.Get("/last-12-months", summaryHandler.ListLast12)
			r.Post("/current-month", summaryHandler.CreateCurrent)
			r.Get("/{year}/{month}", summaryHandler.Get)
			r.Delete("/{year}/{month}", summaryHandler.Delete)
		})

		stockDataHandler := handlers.NewStockDataHandler(yahoo)
		r.Post("/stock-data", stockDataHandler.Batch)

		r.Route("/news", func(r chi.Router) {
			newsHandler := handlers.NewNewsHandler(newsClient, svcs.Settings)
			r.Get("/{ticker}", newsHandler.Headlines)
			r.Put("/api-key", newsHandler.SetAPIKey)
		})

		insightsHandler := handlers.NewInsightsHandler(
			generator, svcs.Holdings, svcs.Cash, svcs.Valuation, svcs.Settings, yahoo, newsClient)
		r.Get("/insights", insightsHandler.Get)
		r.Get("/insights/{ticker}", insightsHandler.GetTicker)
	})

	return r
}
