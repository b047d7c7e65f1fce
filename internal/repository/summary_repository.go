package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/portfoliotracker/backend/internal/model"
)

// SummaryRepository provides data access methods for the monthly_summary
// table. Summaries are caches keyed by the unique (year, month) pair.
type SummaryRepository struct {
	db DBTX
}

// NewSummaryRepository creates a new SummaryRepository with the provided database connection.
func NewSummaryRepository(db DBTX) *SummaryRepository {
	return &SummaryRepository{db: db}
}

const summaryColumns = "id, year, month, total_value, monthly_gain, monthly_gain_percentage, realized_gain, unrealized_gain"

func scanSummary(scan func(dest ...any) error) (model.MonthlySummary, error) {
	var s model.MonthlySummary

	err := scan(&s.ID, &s.Year, &s.Month, &s.TotalValue, &s.MonthlyGain,
		&s.MonthlyGainPercentage, &s.RealizedGain, &s.UnrealizedGain)
	if err != nil {
		return model.MonthlySummary{}, fmt.Errorf("failed to scan monthly_summary table results: %w", err)
	}

	return s, nil
}

func (r *SummaryRepository) querySummaries(ctx context.Context, query string, args ...any) ([]model.MonthlySummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly_summary table: %w", err)
	}
	defer rows.Close()

	summaries := []model.MonthlySummary{}
	for rows.Next() {
		s, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly_summary table: %w", err)
	}

	return summaries, nil
}

// Upsert creates or replaces the summary for a (year, month) pair.
func (r *SummaryRepository) Upsert(ctx context.Context, s model.MonthlySummary) error {
	query := `
		INSERT INTO monthly_summary
			(id, year, month, total_value, monthly_gain, monthly_gain_percentage, realized_gain, unrealized_gain)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET
			total_value = excluded.total_value,
			monthly_gain = excluded.monthly_gain,
			monthly_gain_percentage = excluded.monthly_gain_percentage,
			realized_gain = excluded.realized_gain,
			unrealized_gain = excluded.unrealized_gain
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Year, s.Month, s.TotalValue, s.MonthlyGain,
		s.MonthlyGainPercentage, s.RealizedGain, s.UnrealizedGain)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly_summary: %w", err)
	}

	return nil
}

// GetByYearMonth retrieves the summary for a (year, month) pair. The boolean
// is false when no cached summary exists.
func (r *SummaryRepository) GetByYearMonth(ctx context.Context, year, month int) (model.MonthlySummary, bool, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summary WHERE year = ? AND month = ?`

	row := r.db.QueryRowContext(ctx, query, year, month)
	s, err := scanSummary(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MonthlySummary{}, false, nil
		}
		return model.MonthlySummary{}, false, err
	}

	return s, true, nil
}

// ListAll retrieves all summaries in chronological order.
func (r *SummaryRepository) ListAll(ctx context.Context) ([]model.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summary ORDER BY year ASC, month ASC`
	return r.querySummaries(ctx, query)
}

// ListByYear retrieves all summaries for a year ordered by month.
func (r *SummaryRepository) ListByYear(ctx context.Context, year int) ([]model.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summary WHERE year = ? ORDER BY month ASC`
	return r.querySummaries(ctx, query, year)
}

// ListLast12 retrieves the 12 months up to and including (year, month),
// oldest first.
func (r *SummaryRepository) ListLast12(ctx context.Context, year, month int) ([]model.MonthlySummary, error) {
	// (year*12 + month) linearises year/month pairs for range comparison
	query := `
		SELECT ` + summaryColumns + `
		FROM monthly_summary
		WHERE (year * 12 + month) > (? * 12 + ?) - 12
		  AND (year * 12 + month) <= (? * 12 + ?)
		ORDER BY year ASC, month ASC
	`
	return r.querySummaries(ctx, query, year, month, year, month)
}

// DeleteByYearMonth removes a summary. Returns false when no row matched.
func (r *SummaryRepository) DeleteByYearMonth(ctx context.Context, year, month int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM monthly_summary WHERE year = ? AND month = ?`, year, month)
	if err != nil {
		return false, fmt.Errorf("failed to delete monthly_summary: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
