package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliotracker/backend/internal/model"
)

// SnapshotRepository provides data access methods for the daily_snapshot
// table. The date column is unique; idempotent job runs rely on ExistsByDate.
type SnapshotRepository struct {
	db DBTX
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = "id, date, total_value, investments_value, cash_value"

func scanSnapshot(scan func(dest ...any) error) (model.DailySnapshot, error) {
	var s model.DailySnapshot
	var dateStr string

	if err := scan(&s.ID, &dateStr, &s.TotalValue, &s.InvestmentsValue, &s.CashValue); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
	}

	var err error
	s.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	return s, nil
}

// Insert creates a snapshot row.
func (r *SnapshotRepository) Insert(ctx context.Context, s model.DailySnapshot) error {
	query := `
		INSERT INTO daily_snapshot (id, date, total_value, investments_value, cash_value)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Date.Format(dateFormat), s.TotalValue, s.InvestmentsValue, s.CashValue)
	if err != nil {
		return fmt.Errorf("failed to insert daily_snapshot: %w", err)
	}

	return nil
}

// ExistsByDate reports whether a snapshot exists for the given date.
func (r *SnapshotRepository) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_snapshot WHERE date = ?`,
		date.Format(dateFormat),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check daily_snapshot existence: %w", err)
	}

	return count > 0, nil
}

// GetByDate retrieves the snapshot for a date. The boolean is false when absent.
func (r *SnapshotRepository) GetByDate(ctx context.Context, date time.Time) (model.DailySnapshot, bool, error) {
	query := `SELECT ` + snapshotColumns + ` FROM daily_snapshot WHERE date = ?`

	row := r.db.QueryRowContext(ctx, query, date.Format(dateFormat))
	s, err := scanSnapshot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DailySnapshot{}, false, nil
		}
		return model.DailySnapshot{}, false, err
	}

	return s, true, nil
}

// ListByDateRange retrieves snapshots within [start, end], oldest first.
func (r *SnapshotRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshot
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.DailySnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_snapshot table: %w", err)
	}

	return snapshots, nil
}

// DeleteOlderThan removes snapshots dated strictly before the cutoff and
// returns the number of rows removed.
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM daily_snapshot WHERE date < ?`,
		cutoff.Format(dateFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}

	return result.RowsAffected()
}
