package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func TestCashService_Balance(t *testing.T) {
	ctx := context.Background()

	t.Run("reads zero when no account exists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())

		balance, err := svc.Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.IsZero() {
			t.Errorf("Expected zero balance, got %s", balance)
		}
	})

	t.Run("reads the seeded balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("2500.75"))

		balance, err := svc.Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.Equal(money("2500.75")) {
			t.Errorf("Expected 2500.75, got %s", balance)
		}
	})
}

func TestCashService_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())

		account, err := svc.Initialize(ctx, money("10000"))
		if err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if !account.Balance.Equal(money("10000")) {
			t.Errorf("Expected 10000, got %s", account.Balance)
		}
	})

	t.Run("overwrites an existing balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("500"))

		account, err := svc.Initialize(ctx, money("10000"))
		if err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if !account.Balance.Equal(money("10000")) {
			t.Errorf("Expected 10000, got %s", account.Balance)
		}
		testutil.AssertRowCount(t, db, "cash_account", 1)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())

		_, err := svc.Initialize(ctx, money("-1"))
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Fatalf("Expected negative amount error, got %v", err)
		}
	})
}

func TestCashService_AddAndSubtract(t *testing.T) {
	ctx := context.Background()

	t.Run("add increases the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("100"))

		account, err := svc.Add(ctx, money("50.50"))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !account.Balance.Equal(money("150.50")) {
			t.Errorf("Expected 150.50, got %s", account.Balance)
		}
	})

	t.Run("add creates the account lazily", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())

		account, err := svc.Add(ctx, money("25"))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !account.Balance.Equal(money("25")) {
			t.Errorf("Expected 25, got %s", account.Balance)
		}
		testutil.AssertRowCount(t, db, "cash_account", 1)
	})

	t.Run("add rejects non-positive amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())

		if _, err := svc.Add(ctx, money("0")); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected negative amount error for zero, got %v", err)
		}
		if _, err := svc.Add(ctx, money("-5")); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected negative amount error, got %v", err)
		}
	})

	t.Run("subtract reduces the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("100"))

		account, ok, err := svc.Subtract(ctx, money("40"))
		if err != nil {
			t.Fatalf("Subtract failed: %v", err)
		}
		if !ok {
			t.Fatal("Expected subtraction to succeed")
		}
		if !account.Balance.Equal(money("60")) {
			t.Errorf("Expected 60, got %s", account.Balance)
		}
	})

	t.Run("subtract leaves the balance untouched when it does not cover", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
		testutil.SeedCash(t, db, money("30"))

		account, ok, err := svc.Subtract(ctx, money("40"))
		if err != nil {
			t.Fatalf("Subtract failed: %v", err)
		}
		if ok {
			t.Fatal("Expected subtraction to be refused")
		}
		if !account.Balance.Equal(money("30")) {
			t.Errorf("Expected balance reported as 30, got %s", account.Balance)
		}

		balance, _ := svc.Balance(ctx)
		if !balance.Equal(money("30")) {
			t.Errorf("Expected stored balance unchanged at 30, got %s", balance)
		}
	})
}

func TestCashService_CheckFunds(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCashService(t, db, testutil.NewTestClock())
	testutil.SeedCash(t, db, money("1000"))

	if err := svc.CheckFunds(ctx, money("1000")); err != nil {
		t.Errorf("Expected exact balance to pass, got %v", err)
	}

	err := svc.CheckFunds(ctx, money("1000.01"))
	if !errors.Is(err, apperrors.ErrInsufficientFunds) {
		t.Fatalf("Expected insufficient funds, got %v", err)
	}
}
