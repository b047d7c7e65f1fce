package repository_test

import (
	"context"
	"testing"

	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func TestTradeRepository_ListBuysBefore(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	testutil.NewTrade().WithTicker("AAPL").WithQuantity(5).WithPrice("150").OnDate("2026-08-03").Build(t, db)
	testutil.NewTrade().WithTicker("AAPL").WithQuantity(5).WithPrice("155").OnDate("2026-08-05").Build(t, db)
	// Same day as the cut: excluded.
	testutil.NewTrade().WithTicker("AAPL").WithQuantity(5).WithPrice("160").OnDate("2026-08-10").Build(t, db)
	// Wrong side and wrong ticker: excluded.
	testutil.NewTrade().WithTicker("AAPL").WithQuantity(2).WithPrice("158").OnDate("2026-08-04").AsSell().Build(t, db)
	testutil.NewTrade().WithTicker("MSFT").WithQuantity(5).WithPrice("300").OnDate("2026-08-04").Build(t, db)

	buys, err := repo.ListBuysBefore(ctx, "AAPL", testutil.Date(t, "2026-08-10"))
	if err != nil {
		t.Fatalf("ListBuysBefore failed: %v", err)
	}

	if len(buys) != 2 {
		t.Fatalf("Expected 2 buys, got %d", len(buys))
	}
	// Oldest first.
	if !buys[0].Price.Equal(testutil.Money(t, "150")) || !buys[1].Price.Equal(testutil.Money(t, "155")) {
		t.Errorf("Unexpected order or rows: %+v", buys)
	}
}

func TestTradeRepository_Filters(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	testutil.NewTrade().WithTicker("AAPL").OnDate("2026-08-03").Build(t, db)
	testutil.NewTrade().WithTicker("AAPL").OnDate("2026-08-05").AsSell().Build(t, db)
	testutil.NewTrade().WithTicker("MSFT").OnDate("2026-08-04").Build(t, db)

	t.Run("by ticker, most recent first", func(t *testing.T) {
		trades, err := repo.ListByTicker(ctx, "AAPL")
		if err != nil {
			t.Fatalf("ListByTicker failed: %v", err)
		}
		if len(trades) != 2 {
			t.Fatalf("Expected 2 trades, got %d", len(trades))
		}
		if !trades[0].Date.After(trades[1].Date) {
			t.Errorf("Expected most recent first, got %v then %v", trades[0].Date, trades[1].Date)
		}
	})

	t.Run("by side", func(t *testing.T) {
		sells, err := repo.ListBySide(ctx, model.TradeSideSell)
		if err != nil {
			t.Fatalf("ListBySide failed: %v", err)
		}
		if len(sells) != 1 {
			t.Fatalf("Expected 1 sell, got %d", len(sells))
		}
	})

	t.Run("by date range, inclusive both ends", func(t *testing.T) {
		trades, err := repo.ListByDateRange(ctx, testutil.Date(t, "2026-08-04"), testutil.Date(t, "2026-08-05"))
		if err != nil {
			t.Fatalf("ListByDateRange failed: %v", err)
		}
		if len(trades) != 2 {
			t.Fatalf("Expected 2 trades, got %d", len(trades))
		}
	})
}

func TestTradeRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	built := testutil.NewTrade().WithTicker("AAPL").WithQuantity(7).WithPrice("123.45").OnDate("2026-08-03").Build(t, db)

	got, found, err := repo.GetByID(ctx, built.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !found {
		t.Fatal("Expected the trade to be found")
	}
	if got.Ticker != "AAPL" || got.Quantity != 7 || !got.Price.Equal(testutil.Money(t, "123.45")) {
		t.Errorf("Round trip mismatch: %+v", got)
	}

	_, found, err = repo.GetByID(ctx, testutil.MakeID())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found {
		t.Error("Expected a random ID to be absent")
	}
}
