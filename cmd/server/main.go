package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/portfoliotracker/backend/internal/api"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/config"
	"github.com/portfoliotracker/backend/internal/database"
	"github.com/portfoliotracker/backend/internal/insights"
	"github.com/portfoliotracker/backend/internal/news"
	"github.com/portfoliotracker/backend/internal/quote"
	"github.com/portfoliotracker/backend/internal/repository"
	"github.com/portfoliotracker/backend/internal/scheduler"
	"github.com/portfoliotracker/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	clk, err := clock.New(cfg.Market.Timezone)
	if err != nil {
		log.Fatalf("Failed to load market timezone: %v", err)
	}

	// Create repositories
	cashRepo := repository.NewCashRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create external clients
	yahoo := quote.NewYahooClient()
	newsClient := news.NewClient()
	generator := insights.NewGenerator(cfg.Insights.APIKey, cfg.Insights.Model)

	// Create services
	cashService := service.NewCashService(cashRepo, clk)
	holdingService := service.NewHoldingService(holdingRepo)
	tradeService := service.NewTradeService(tradeRepo, clk)
	transactionService := service.NewTransactionService(db, cashService, holdingService, tradeService, clk)
	valuationService := service.NewValuationService(tradeRepo, holdingRepo, summaryRepo, yahoo, clk)
	snapshotService := service.NewSnapshotService(snapshotRepo, holdingRepo, cashService, clk)
	summaryService := service.NewSummaryService(summaryRepo, holdingRepo, cashService, valuationService, clk)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}

	// Create router
	router := api.NewRouter(db, api.Services{
		Cash:        cashService,
		Holdings:    holdingService,
		Trades:      tradeService,
		Transaction: transactionService,
		Valuation:   valuationService,
		Snapshots:   snapshotService,
		Summaries:   summaryService,
		Settings:    settingsService,
	}, yahoo, newsClient, generator, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(clk, snapshotService, summaryService)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		sched.Start()
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		log.Println("Shutting down server...")

		if sched != nil {
			sched.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
