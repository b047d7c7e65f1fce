package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliotracker/backend/internal/model"
)

// TradeRepository provides data access methods for the append-only trade
// table. Every realized-gain figure in the system is reconstructed from the
// rows stored here.
type TradeRepository struct {
	db DBTX
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db DBTX) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{db: tx}
}

const tradeColumns = "id, date, ticker, quantity, price, side, created_at"

func scanTrade(scan func(dest ...any) error) (model.Trade, error) {
	var t model.Trade
	var dateStr, createdAtStr string

	if err := scan(&t.ID, &dateStr, &t.Ticker, &t.Quantity, &t.Price, &t.Side, &createdAtStr); err != nil {
		return model.Trade{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	var err error
	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Trade{}, err
	}
	t.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return model.Trade{}, err
	}

	return t, nil
}

// parseTimestamp handles DATETIME columns written either by SQLite's
// CURRENT_TIMESTAMP or by Go in RFC3339.
func parseTimestamp(str string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, str)
	if err != nil {
		ts, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return ts.UTC(), nil
}

func (r *TradeRepository) queryTrades(ctx context.Context, query string, args ...any) ([]model.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// Insert appends a trade record.
func (r *TradeRepository) Insert(ctx context.Context, t model.Trade) error {
	query := `
		INSERT INTO trade (id, date, ticker, quantity, price, side, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format(dateFormat),
		t.Ticker,
		t.Quantity,
		t.Price,
		t.Side,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// GetByID retrieves a single trade. The boolean is false when no row matched.
func (r *TradeRepository) GetByID(ctx context.Context, id string) (model.Trade, bool, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTrade(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Trade{}, false, nil
		}
		return model.Trade{}, false, err
	}

	return t, true, nil
}

// ListAll retrieves the full trade history, most recent first.
func (r *TradeRepository) ListAll(ctx context.Context) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade ORDER BY date DESC, created_at DESC`
	return r.queryTrades(ctx, query)
}

// ListByTicker retrieves all trades for a ticker, most recent first.
func (r *TradeRepository) ListByTicker(ctx context.Context, ticker string) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE ticker = ? ORDER BY date DESC, created_at DESC`
	return r.queryTrades(ctx, query, ticker)
}

// ListBySide retrieves all trades on one side, most recent first.
func (r *TradeRepository) ListBySide(ctx context.Context, side model.TradeSide) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE side = ? ORDER BY date DESC, created_at DESC`
	return r.queryTrades(ctx, query, side)
}

// ListBuysBefore retrieves BUY trades for a ticker dated strictly before the
// given date, oldest first. This feeds the realized-gain reconstruction.
func (r *TradeRepository) ListBuysBefore(ctx context.Context, ticker string, date time.Time) ([]model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade
		WHERE ticker = ? AND side = ? AND date < ?
		ORDER BY date ASC, created_at ASC
	`
	return r.queryTrades(ctx, query, ticker, model.TradeSideBuy, date.Format(dateFormat))
}

// ListByDateRange retrieves all trades within [start, end], oldest first.
func (r *TradeRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC
	`
	return r.queryTrades(ctx, query, start.Format(dateFormat), end.Format(dateFormat))
}

// Update rewrites a trade record. Reserved for administrative corrections;
// the transaction engine never calls it.
func (r *TradeRepository) Update(ctx context.Context, t model.Trade) (bool, error) {
	query := `
		UPDATE trade
		SET date = ?, ticker = ?, quantity = ?, price = ?, side = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Date.Format(dateFormat), t.Ticker, t.Quantity, t.Price, t.Side, t.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteByID removes a trade record. Reserved for administrative corrections.
func (r *TradeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
