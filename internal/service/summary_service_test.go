package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func TestSummaryService_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("gain compares against the previous month's summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSummaryService(t, db, testutil.NewTestClock(), testutil.NewStaticQuotes(nil))

		summaries := repository.NewSummaryRepository(db)
		if err := summaries.Upsert(ctx, model.MonthlySummary{
			ID: testutil.MakeID(), Year: 2026, Month: 7,
			TotalValue:            money("10000"),
			MonthlyGain:           money("0"),
			MonthlyGainPercentage: money("0"),
			RealizedGain:          money("0"),
			UnrealizedGain:        money("0"),
		}); err != nil {
			t.Fatalf("Failed to seed previous summary: %v", err)
		}

		testutil.SeedCash(t, db, money("9300"))
		testutil.NewHolding().WithTicker("AAPL").WithQuantity(5).WithAverageCost("150").Build(t, db)

		summary, err := svc.CreateOrUpdate(ctx, 2026, time.August)
		if err != nil {
			t.Fatalf("CreateOrUpdate failed: %v", err)
		}

		// 9300 + 750 = 10050; gain 50 over 10000 = 0.50%
		if !summary.TotalValue.Equal(money("10050")) {
			t.Errorf("Expected total 10050, got %s", summary.TotalValue)
		}
		if !summary.MonthlyGain.Equal(money("50")) {
			t.Errorf("Expected gain 50, got %s", summary.MonthlyGain)
		}
		if !summary.MonthlyGainPercentage.Equal(money("0.5")) {
			t.Errorf("Expected gain pct 0.5, got %s", summary.MonthlyGainPercentage)
		}
	})

	t.Run("gain reads zero without a previous summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSummaryService(t, db, testutil.NewTestClock(), testutil.NewStaticQuotes(nil))
		testutil.SeedCash(t, db, money("10000"))

		summary, err := svc.CreateOrUpdate(ctx, 2026, time.August)
		if err != nil {
			t.Fatalf("CreateOrUpdate failed: %v", err)
		}
		if !summary.MonthlyGain.IsZero() || !summary.MonthlyGainPercentage.IsZero() {
			t.Errorf("Expected zero gain without prior summary, got %s / %s",
				summary.MonthlyGain, summary.MonthlyGainPercentage)
		}
	})

	t.Run("unrealized gain excludes positions acquired after the month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewStaticQuotes(map[string]string{"AAPL": "250"})
		svc := testutil.NewTestSummaryService(t, db, testutil.NewTestClock(), quotes)
		testutil.SeedCash(t, db, money("10000"))

		testutil.NewHolding().WithTicker("AAPL").WithQuantity(10).WithAverageCost("150").AcquiredOn("2026-08-15").Build(t, db)

		summary, err := svc.CreateOrUpdate(ctx, 2026, time.July)
		if err != nil {
			t.Fatalf("CreateOrUpdate failed: %v", err)
		}
		if !summary.UnrealizedGain.IsZero() {
			t.Errorf("Expected zero unrealized for July, got %s", summary.UnrealizedGain)
		}
	})

	t.Run("rerunning keeps one row per month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSummaryService(t, db, testutil.NewTestClock(), testutil.NewStaticQuotes(nil))
		testutil.SeedCash(t, db, money("10000"))

		first, err := svc.CreateOrUpdate(ctx, 2026, time.August)
		if err != nil {
			t.Fatalf("First run failed: %v", err)
		}
		second, err := svc.CreateOrUpdate(ctx, 2026, time.August)
		if err != nil {
			t.Fatalf("Second run failed: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("Expected the summary ID to be stable, got %s vs %s", second.ID, first.ID)
		}
		testutil.AssertRowCount(t, db, "monthly_summary", 1)
	})
}

func TestSummaryService_EnsureMonthEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("does nothing mid-month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		// 2026-08-20 is not the last day of August.
		svc := testutil.NewTestSummaryService(t, db, testutil.NewTestClock(), testutil.NewStaticQuotes(nil))
		testutil.SeedCash(t, db, money("10000"))

		_, created, err := svc.EnsureMonthEnd(ctx)
		if err != nil {
			t.Fatalf("EnsureMonthEnd failed: %v", err)
		}
		if created {
			t.Error("Expected no summary mid-month")
		}
		testutil.AssertRowCount(t, db, "monthly_summary", 0)
	})

	t.Run("writes the summary on the last calendar day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		lastDay := clock.Fixed(time.Date(2026, 8, 31, 23, 55, 0, 0, time.UTC))
		svc := testutil.NewTestSummaryService(t, db, lastDay, testutil.NewStaticQuotes(nil))
		testutil.SeedCash(t, db, money("10000"))

		summary, created, err := svc.EnsureMonthEnd(ctx)
		if err != nil {
			t.Fatalf("EnsureMonthEnd failed: %v", err)
		}
		if !created {
			t.Fatal("Expected a summary on the last day of the month")
		}
		if summary.Year != 2026 || summary.Month != 8 {
			t.Errorf("Expected 2026-08, got %d-%02d", summary.Year, summary.Month)
		}
	})

	t.Run("does not overwrite an existing summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		lastDay := clock.Fixed(time.Date(2026, 8, 31, 23, 55, 0, 0, time.UTC))
		svc := testutil.NewTestSummaryService(t, db, lastDay, testutil.NewStaticQuotes(nil))
		testutil.SeedCash(t, db, money("10000"))

		if _, created, err := svc.EnsureMonthEnd(ctx); err != nil || !created {
			t.Fatalf("First run failed: created=%v err=%v", created, err)
		}

		_, created, err := svc.EnsureMonthEnd(ctx)
		if err != nil {
			t.Fatalf("Second run failed: %v", err)
		}
		if created {
			t.Error("Expected the existing summary to be left alone")
		}
		testutil.AssertRowCount(t, db, "monthly_summary", 1)
	})
}
