package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
)

// retentionDays is how long daily snapshots are kept before the cleanup job
// removes them.
const retentionDays = 30

// SnapshotService records the end-of-day portfolio value. Snapshots value
// positions at book value (quantity times average cost) so a row can always
// be written even when the quote source is down.
type SnapshotService struct {
	snapshots *repository.SnapshotRepository
	holdings  *repository.HoldingRepository
	cash      *CashService
	clk       clock.Clock
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	snapshots *repository.SnapshotRepository,
	holdings *repository.HoldingRepository,
	cash *CashService,
	clk clock.Clock,
) *SnapshotService {
	return &SnapshotService{
		snapshots: snapshots,
		holdings:  holdings,
		cash:      cash,
		clk:       clk,
	}
}

// SaveSnapshot writes a snapshot for the given date from the current state
// of holdings and cash.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, date time.Time) (model.DailySnapshot, error) {
	investments, err := s.holdings.SumQuantityTimesCost(ctx)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	cash, err := s.cash.Balance(ctx)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	snapshot := model.DailySnapshot{
		ID:               uuid.New().String(),
		Date:             clock.Midnight(date),
		TotalValue:       investments.Add(cash),
		InvestmentsValue: investments,
		CashValue:        cash,
	}
	if err := s.snapshots.Insert(ctx, snapshot); err != nil {
		return model.DailySnapshot{}, err
	}

	return snapshot, nil
}

// SaveTodayIfMissing writes today's snapshot unless one already exists. The
// boolean reports whether a new row was created, making the scheduled job
// safe to rerun.
func (s *SnapshotService) SaveTodayIfMissing(ctx context.Context) (model.DailySnapshot, bool, error) {
	today := s.clk.Today()

	exists, err := s.snapshots.ExistsByDate(ctx, today)
	if err != nil {
		return model.DailySnapshot{}, false, err
	}
	if exists {
		existing, _, err := s.snapshots.GetByDate(ctx, today)
		return existing, false, err
	}

	snapshot, err := s.SaveSnapshot(ctx, today)
	if err != nil {
		return model.DailySnapshot{}, false, err
	}

	return snapshot, true, nil
}

// GetByDate retrieves the snapshot for a date.
func (s *SnapshotService) GetByDate(ctx context.Context, date time.Time) (model.DailySnapshot, error) {
	snapshot, found, err := s.snapshots.GetByDate(ctx, date)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	if !found {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}

	return snapshot, nil
}

// List retrieves snapshots within [start, end], oldest first.
func (s *SnapshotService) List(ctx context.Context, start, end time.Time) ([]model.DailySnapshot, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	return s.snapshots.ListByDateRange(ctx, start, end)
}

// Cleanup removes snapshots older than the retention window and returns the
// number of rows removed.
func (s *SnapshotService) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.clk.Today().AddDate(0, 0, -retentionDays)
	return s.snapshots.DeleteOlderThan(ctx, cutoff)
}
