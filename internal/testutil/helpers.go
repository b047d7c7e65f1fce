package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/quote"
	"github.com/portfoliotracker/backend/internal/repository"
	"github.com/portfoliotracker/backend/internal/service"
)

// DefaultTestTime is the instant tests pin the clock to unless they need a
// specific date: a mid-month Thursday.
var DefaultTestTime = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

// NewTestClock returns a clock pinned to DefaultTestTime.
func NewTestClock() clock.Clock {
	return clock.Fixed(DefaultTestTime)
}

func NewTestCashService(t *testing.T, db *sql.DB, clk clock.Clock) *service.CashService {
	t.Helper()

	return service.NewCashService(repository.NewCashRepository(db), clk)
}

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(repository.NewHoldingRepository(db))
}

func NewTestTradeService(t *testing.T, db *sql.DB, clk clock.Clock) *service.TradeService {
	t.Helper()

	return service.NewTradeService(repository.NewTradeRepository(db), clk)
}

func NewTestTransactionService(t *testing.T, db *sql.DB, clk clock.Clock) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		db,
		NewTestCashService(t, db, clk),
		NewTestHoldingService(t, db),
		NewTestTradeService(t, db, clk),
		clk,
	)
}

func NewTestValuationService(t *testing.T, db *sql.DB, clk clock.Clock, quotes quote.Provider) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		repository.NewTradeRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewSummaryRepository(db),
		quotes,
		clk,
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, clk clock.Clock) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		repository.NewHoldingRepository(db),
		NewTestCashService(t, db, clk),
		clk,
	)
}

func NewTestSummaryService(t *testing.T, db *sql.DB, clk clock.Clock, quotes quote.Provider) *service.SummaryService {
	t.Helper()

	return service.NewSummaryService(
		repository.NewSummaryRepository(db),
		repository.NewHoldingRepository(db),
		NewTestCashService(t, db, clk),
		NewTestValuationService(t, db, clk, quotes),
		clk,
	)
}
