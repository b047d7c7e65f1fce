package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// There is at most one row per ticker; rows disappear when a position is
// fully liquidated.
type HoldingRepository struct {
	db DBTX
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db DBTX) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{db: tx}
}

const holdingColumns = "id, ticker, quantity, average_cost, last_acquired"

func scanHolding(scan func(dest ...any) error) (model.Holding, error) {
	var h model.Holding
	var acquiredStr string

	if err := scan(&h.ID, &h.Ticker, &h.Quantity, &h.AverageCost, &acquiredStr); err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}

	var err error
	h.LastAcquired, err = ParseTime(acquiredStr)
	if err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// GetByTicker retrieves the open holding for a ticker. The boolean is false
// when no position exists.
func (r *HoldingRepository) GetByTicker(ctx context.Context, ticker string) (model.Holding, bool, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE ticker = ?`

	row := r.db.QueryRowContext(ctx, query, ticker)
	h, err := scanHolding(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, false, nil
		}
		return model.Holding{}, false, err
	}

	return h, true, nil
}

// GetByID retrieves a holding by its ID.
func (r *HoldingRepository) GetByID(ctx context.Context, id string) (model.Holding, bool, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	h, err := scanHolding(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, false, nil
		}
		return model.Holding{}, false, err
	}

	return h, true, nil
}

// List retrieves all open holdings ordered by ticker.
func (r *HoldingRepository) List(ctx context.Context) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding ORDER BY ticker ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// Insert creates a new holding row.
func (r *HoldingRepository) Insert(ctx context.Context, h model.Holding) error {
	query := `
		INSERT INTO holding (id, ticker, quantity, average_cost, last_acquired)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.Ticker, h.Quantity, h.AverageCost, h.LastAcquired.Format(dateFormat))
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an existing holding.
func (r *HoldingRepository) Update(ctx context.Context, h model.Holding) error {
	query := `
		UPDATE holding
		SET ticker = ?, quantity = ?, average_cost = ?, last_acquired = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		h.Ticker, h.Quantity, h.AverageCost, h.LastAcquired.Format(dateFormat), h.ID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	return nil
}

// DeleteByID removes a holding. Returns false when no row matched.
func (r *HoldingRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holding WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// SumQuantityTimesCost returns the total cost basis across all open holdings.
// The multiplication is done in Go on exact decimals; SQLite would coerce the
// stored decimal strings to floats.
func (r *HoldingRepository) SumQuantityTimesCost(ctx context.Context) (decimal.Decimal, error) {
	holdings, err := r.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.BookValue())
	}

	return total, nil
}
