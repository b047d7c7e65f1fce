package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func TestSnapshotService_SaveTodayIfMissing(t *testing.T) {
	ctx := context.Background()

	t.Run("records book value plus cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewTestClock())

		testutil.SeedCash(t, db, money("9300"))
		testutil.NewHolding().WithTicker("AAPL").WithQuantity(5).WithAverageCost("150").Build(t, db)

		snapshot, created, err := svc.SaveTodayIfMissing(ctx)
		if err != nil {
			t.Fatalf("SaveTodayIfMissing failed: %v", err)
		}
		if !created {
			t.Fatal("Expected a new snapshot")
		}

		if !snapshot.InvestmentsValue.Equal(money("750")) {
			t.Errorf("Expected investments 750, got %s", snapshot.InvestmentsValue)
		}
		if !snapshot.CashValue.Equal(money("9300")) {
			t.Errorf("Expected cash 9300, got %s", snapshot.CashValue)
		}
		if !snapshot.TotalValue.Equal(money("10050")) {
			t.Errorf("Expected total 10050, got %s", snapshot.TotalValue)
		}

		want := testutil.DefaultTestTime.Format("2006-01-02")
		if got := snapshot.Date.Format("2006-01-02"); got != want {
			t.Errorf("Expected date %s, got %s", want, got)
		}
	})

	t.Run("rerunning on the same day is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("1000"))

		first, created, err := svc.SaveTodayIfMissing(ctx)
		if err != nil || !created {
			t.Fatalf("First run failed: created=%v err=%v", created, err)
		}

		// Balance moves, but the existing snapshot must win.
		testutil.SeedCash(t, db, money("2000"))

		second, created, err := svc.SaveTodayIfMissing(ctx)
		if err != nil {
			t.Fatalf("Second run failed: %v", err)
		}
		if created {
			t.Error("Expected no new snapshot on rerun")
		}
		if second.ID != first.ID {
			t.Errorf("Expected the original snapshot back, got %s vs %s", second.ID, first.ID)
		}
		if !second.TotalValue.Equal(first.TotalValue) {
			t.Errorf("Expected stored value %s, got %s", first.TotalValue, second.TotalValue)
		}
		testutil.AssertRowCount(t, db, "daily_snapshot", 1)
	})
}

func TestSnapshotService_Cleanup(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	clk := testutil.NewTestClock()
	svc := testutil.NewTestSnapshotService(t, db, clk)

	repo := repository.NewSnapshotRepository(db)
	seed := func(date string) {
		t.Helper()
		err := repo.Insert(ctx, model.DailySnapshot{
			ID:               uuid.New().String(),
			Date:             testutil.Date(t, date),
			TotalValue:       money("1000"),
			InvestmentsValue: money("0"),
			CashValue:        money("1000"),
		})
		if err != nil {
			t.Fatalf("Failed to seed snapshot: %v", err)
		}
	}

	// Clock is pinned to 2026-08-20; the cutoff lands on 2026-07-21.
	seed("2026-07-01") // expired
	seed("2026-07-20") // expired
	seed("2026-07-21") // exactly at the cutoff, kept
	seed("2026-08-19") // kept

	removed, err := svc.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	testutil.AssertRowCount(t, db, "daily_snapshot", 2)
}
