package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/service"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func setupEngine(t *testing.T) (*service.TransactionService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return testutil.NewTestTransactionService(t, db, testutil.NewTestClock()), db
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactionService_Buy(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts cash, opens position, records trade", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		result, err := engine.Buy(ctx, "AAPL", 10, money("150"), testutil.Date(t, "2026-08-03"))
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		if !result.TotalCost.Equal(money("1500")) {
			t.Errorf("Expected total cost 1500, got %s", result.TotalCost)
		}
		if !result.RemainingCash.Equal(money("8500")) {
			t.Errorf("Expected remaining cash 8500, got %s", result.RemainingCash)
		}
		if result.Holding == nil {
			t.Fatal("Expected a holding in the result")
		}
		if result.Holding.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %d", result.Holding.Quantity)
		}
		if !result.Holding.AverageCost.Equal(money("150")) {
			t.Errorf("Expected average cost 150, got %s", result.Holding.AverageCost)
		}

		testutil.AssertRowCount(t, db, "trade", 1)
		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("rejects when cash does not cover the cost", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("100"))

		_, err := engine.Buy(ctx, "AAPL", 10, money("150"), testutil.Date(t, "2026-08-03"))
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Fatalf("Expected insufficient funds error, got %v", err)
		}

		var detailed *apperrors.InsufficientFundsError
		if !errors.As(err, &detailed) {
			t.Fatal("Expected detailed InsufficientFundsError")
		}
		if !detailed.Required.Equal(money("1500")) || !detailed.Available.Equal(money("100")) {
			t.Errorf("Unexpected amounts in error: %v", detailed)
		}

		// Nothing may have been touched.
		testutil.AssertRowCount(t, db, "trade", 0)
		testutil.AssertRowCount(t, db, "holding", 0)

		clk := testutil.NewTestClock()
		balance, err := testutil.NewTestCashService(t, db, clk).Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.Equal(money("100")) {
			t.Errorf("Expected balance unchanged at 100, got %s", balance)
		}
	})

	t.Run("folds repeat buys into one position at the weighted average", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		if _, err := engine.Buy(ctx, "AAPL", 5, money("150"), testutil.Date(t, "2026-08-03")); err != nil {
			t.Fatalf("First buy failed: %v", err)
		}
		result, err := engine.Buy(ctx, "AAPL", 5, money("170"), testutil.Date(t, "2026-08-04"))
		if err != nil {
			t.Fatalf("Second buy failed: %v", err)
		}

		if result.Holding.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %d", result.Holding.Quantity)
		}
		if !result.Holding.AverageCost.Equal(money("160")) {
			t.Errorf("Expected average cost 160, got %s", result.Holding.AverageCost)
		}
		testutil.AssertRowCount(t, db, "holding", 1)
		testutil.AssertRowCount(t, db, "trade", 2)
	})

	t.Run("defaults the trade date to today", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		result, err := engine.Buy(ctx, "AAPL", 1, money("150"), time.Time{})
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		want := testutil.DefaultTestTime.Format("2006-01-02")
		if got := result.Trade.Date.Format("2006-01-02"); got != want {
			t.Errorf("Expected trade date %s, got %s", want, got)
		}
	})
}

func TestTransactionService_Sell(t *testing.T) {
	ctx := context.Background()

	t.Run("credits proceeds and reduces the position", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		if _, err := engine.Buy(ctx, "AAPL", 10, money("150"), testutil.Date(t, "2026-08-03")); err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		result, err := engine.Sell(ctx, "AAPL", 5, money("160"), testutil.Date(t, "2026-08-10"))
		if err != nil {
			t.Fatalf("Sell failed: %v", err)
		}

		if !result.TotalProceeds.Equal(money("800")) {
			t.Errorf("Expected proceeds 800, got %s", result.TotalProceeds)
		}
		if !result.RemainingCash.Equal(money("9300")) {
			t.Errorf("Expected remaining cash 9300, got %s", result.RemainingCash)
		}
		if result.Holding == nil {
			t.Fatal("Expected a remaining holding")
		}
		if result.Holding.Quantity != 5 {
			t.Errorf("Expected 5 shares left, got %d", result.Holding.Quantity)
		}
		// Sells never move the average cost.
		if !result.Holding.AverageCost.Equal(money("150")) {
			t.Errorf("Expected average cost unchanged at 150, got %s", result.Holding.AverageCost)
		}
	})

	t.Run("removes the position on full liquidation", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		if _, err := engine.Buy(ctx, "AAPL", 10, money("150"), testutil.Date(t, "2026-08-03")); err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		result, err := engine.Sell(ctx, "AAPL", 10, money("160"), testutil.Date(t, "2026-08-10"))
		if err != nil {
			t.Fatalf("Sell failed: %v", err)
		}

		if result.Holding != nil {
			t.Errorf("Expected nil holding after full liquidation, got %+v", result.Holding)
		}
		testutil.AssertRowCount(t, db, "holding", 0)
		testutil.AssertRowCount(t, db, "trade", 2)
	})

	t.Run("rejects selling a ticker with no position", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		_, err := engine.Sell(ctx, "MSFT", 1, money("300"), testutil.Date(t, "2026-08-10"))
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Fatalf("Expected holding not found, got %v", err)
		}

		clk := testutil.NewTestClock()
		balance, _ := testutil.NewTestCashService(t, db, clk).Balance(ctx)
		if !balance.Equal(money("10000")) {
			t.Errorf("Expected cash unchanged at 10000, got %s", balance)
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("rejects selling more shares than held", func(t *testing.T) {
		engine, db := setupEngine(t)
		testutil.SeedCash(t, db, money("10000"))

		if _, err := engine.Buy(ctx, "AAPL", 5, money("150"), testutil.Date(t, "2026-08-03")); err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		_, err := engine.Sell(ctx, "AAPL", 6, money("160"), testutil.Date(t, "2026-08-10"))
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected insufficient shares, got %v", err)
		}

		var detailed *apperrors.InsufficientSharesError
		if !errors.As(err, &detailed) {
			t.Fatal("Expected detailed InsufficientSharesError")
		}
		if detailed.Requested != 6 || detailed.Available != 5 {
			t.Errorf("Unexpected quantities in error: %+v", detailed)
		}

		// Holding and trade history stay as they were.
		testutil.AssertRowCount(t, db, "trade", 1)
		testutil.AssertRowCount(t, db, "holding", 1)
	})
}
