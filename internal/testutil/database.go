package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Cash account table (singleton row)
		CREATE TABLE cash_account (
			id INTEGER NOT NULL PRIMARY KEY CHECK (id = 1),
			balance TEXT NOT NULL,
			last_updated DATETIME NOT NULL
		);

		-- Holding table (one row per open position)
		CREATE TABLE holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL UNIQUE,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			average_cost TEXT NOT NULL,
			last_acquired DATE NOT NULL
		);

		-- Trade table (append-only history)
		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price TEXT NOT NULL,
			side VARCHAR(4) NOT NULL CHECK (side IN ('BUY', 'SELL')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Daily snapshot table
		CREATE TABLE daily_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			total_value TEXT NOT NULL,
			investments_value TEXT NOT NULL,
			cash_value TEXT NOT NULL
		);

		-- Monthly summary table
		CREATE TABLE monthly_summary (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			total_value TEXT NOT NULL,
			monthly_gain TEXT NOT NULL,
			monthly_gain_percentage TEXT NOT NULL,
			realized_gain TEXT NOT NULL,
			unrealized_gain TEXT NOT NULL,
			CONSTRAINT unique_year_month UNIQUE (year, month)
		);

		-- App setting table (key/value store)
		CREATE TABLE app_setting (
			"key" VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		-- Indexes for performance
		CREATE INDEX ix_trade_date ON trade(date);
		CREATE INDEX ix_trade_ticker ON trade(ticker);
		CREATE INDEX ix_trade_ticker_side_date ON trade(ticker, side, date);
		CREATE INDEX ix_daily_snapshot_date ON daily_snapshot(date);
		CREATE INDEX ix_monthly_summary_year_month ON monthly_summary(year, month);
	`

	_, err := db.Exec(schema)
	return err
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
