package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/testutil"
)

func setupOrderHandler(t *testing.T) (*OrderHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	engine := testutil.NewTestTransactionService(t, db, testutil.NewTestClock())
	return NewOrderHandler(engine), db
}

func TestOrderHandler_Buy(t *testing.T) {
	t.Run("executes a valid buy", func(t *testing.T) {
		handler, db := setupOrderHandler(t)
		testutil.SeedCash(t, db, testutil.Money(t, "10000"))

		body := `{"ticker":"AAPL","quantity":10,"price":150,"date":"2026-08-03"}`
		req := httptest.NewRequest(http.MethodPost, "/api/buy", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var result model.BuyResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if !result.RemainingCash.Equal(testutil.Money(t, "8500")) {
			t.Errorf("Expected remaining cash 8500, got %s", result.RemainingCash)
		}
		if result.Holding == nil || result.Holding.Quantity != 10 {
			t.Errorf("Unexpected holding in result: %+v", result.Holding)
		}
	})

	t.Run("returns 400 on validation failure", func(t *testing.T) {
		handler, _ := setupOrderHandler(t)

		body := `{"ticker":"","quantity":0,"price":-1}`
		req := httptest.NewRequest(http.MethodPost, "/api/buy", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		handler, _ := setupOrderHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/buy", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 422 when funds do not cover", func(t *testing.T) {
		handler, db := setupOrderHandler(t)
		testutil.SeedCash(t, db, testutil.Money(t, "100"))

		body := `{"ticker":"AAPL","quantity":10,"price":150}`
		req := httptest.NewRequest(http.MethodPost, "/api/buy", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Buy(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})
}

func TestOrderHandler_Sell(t *testing.T) {
	t.Run("executes a valid sell", func(t *testing.T) {
		handler, db := setupOrderHandler(t)
		testutil.SeedCash(t, db, testutil.Money(t, "8500"))
		testutil.NewHolding().WithTicker("AAPL").WithQuantity(10).WithAverageCost("150").Build(t, db)

		body := `{"ticker":"AAPL","quantity":5,"price":160,"date":"2026-08-10"}`
		req := httptest.NewRequest(http.MethodPost, "/api/sell", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Sell(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var result model.SellResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if !result.RemainingCash.Equal(testutil.Money(t, "9300")) {
			t.Errorf("Expected remaining cash 9300, got %s", result.RemainingCash)
		}
	})

	t.Run("returns 404 when no position exists", func(t *testing.T) {
		handler, db := setupOrderHandler(t)
		testutil.SeedCash(t, db, testutil.Money(t, "1000"))

		body := `{"ticker":"MSFT","quantity":1,"price":300}`
		req := httptest.NewRequest(http.MethodPost, "/api/sell", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Sell(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 422 when the position is too small", func(t *testing.T) {
		handler, db := setupOrderHandler(t)
		testutil.SeedCash(t, db, testutil.Money(t, "1000"))
		testutil.NewHolding().WithTicker("AAPL").WithQuantity(3).WithAverageCost("150").Build(t, db)

		body := `{"ticker":"AAPL","quantity":5,"price":160}`
		req := httptest.NewRequest(http.MethodPost, "/api/sell", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Sell(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})
}
