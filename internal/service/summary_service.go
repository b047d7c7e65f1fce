package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
)

// SummaryService maintains the monthly summary cache. Month-end values are
// computed once and stored so past-month figures stay stable as quotes move.
type SummaryService struct {
	summaries *repository.SummaryRepository
	holdings  *repository.HoldingRepository
	cash      *CashService
	valuation *ValuationService
	clk       clock.Clock
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(
	summaries *repository.SummaryRepository,
	holdings *repository.HoldingRepository,
	cash *CashService,
	valuation *ValuationService,
	clk clock.Clock,
) *SummaryService {
	return &SummaryService{
		summaries: summaries,
		holdings:  holdings,
		cash:      cash,
		valuation: valuation,
		clk:       clk,
	}
}

// CreateOrUpdate computes and stores the summary for a (year, month). The
// monthly gain compares the month's total value against the previous month's
// cached total; with no previous summary, the gain reads as zero.
func (s *SummaryService) CreateOrUpdate(ctx context.Context, year int, month time.Month) (model.MonthlySummary, error) {
	investments, err := s.holdings.SumQuantityTimesCost(ctx)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	cashBalance, err := s.cash.Balance(ctx)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	totalValue := investments.Add(cashBalance)

	start, end := clock.MonthBounds(year, month, s.clk.Location())
	realized, err := s.valuation.RealizedGainInRange(ctx, start, end)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	unrealized, err := s.valuation.UnrealizedGainAsOf(ctx, end)
	if err != nil {
		return model.MonthlySummary{}, err
	}

	monthlyGain := decimal.Zero
	monthlyGainPct := decimal.Zero
	prevStart := start.AddDate(0, -1, 0)
	prev, found, err := s.summaries.GetByYearMonth(ctx, prevStart.Year(), int(prevStart.Month()))
	if err != nil {
		return model.MonthlySummary{}, err
	}
	if found {
		monthlyGain = totalValue.Sub(prev.TotalValue).Round(2)
		if !prev.TotalValue.IsZero() {
			monthlyGainPct = monthlyGain.Div(prev.TotalValue).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	existing, found, err := s.summaries.GetByYearMonth(ctx, year, int(month))
	if err != nil {
		return model.MonthlySummary{}, err
	}

	summary := model.MonthlySummary{
		ID:                    uuid.New().String(),
		Year:                  year,
		Month:                 int(month),
		TotalValue:            totalValue,
		MonthlyGain:           monthlyGain,
		MonthlyGainPercentage: monthlyGainPct,
		RealizedGain:          realized,
		UnrealizedGain:        unrealized,
	}
	if found {
		summary.ID = existing.ID
	}

	if err := s.summaries.Upsert(ctx, summary); err != nil {
		return model.MonthlySummary{}, err
	}

	return summary, nil
}

// CreateCurrentMonth computes and stores the summary for the current month.
func (s *SummaryService) CreateCurrentMonth(ctx context.Context) (model.MonthlySummary, error) {
	now := s.clk.Now()
	return s.CreateOrUpdate(ctx, now.Year(), now.Month())
}

// EnsureMonthEnd stores the current month's summary when today is the last
// calendar day of the month and no summary exists yet. The boolean reports
// whether a summary was written.
func (s *SummaryService) EnsureMonthEnd(ctx context.Context) (model.MonthlySummary, bool, error) {
	now := s.clk.Now()
	if !clock.IsLastDayOfMonth(now) {
		return model.MonthlySummary{}, false, nil
	}

	_, found, err := s.summaries.GetByYearMonth(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return model.MonthlySummary{}, false, err
	}
	if found {
		return model.MonthlySummary{}, false, nil
	}

	summary, err := s.CreateOrUpdate(ctx, now.Year(), now.Month())
	if err != nil {
		return model.MonthlySummary{}, false, err
	}

	return summary, true, nil
}

// Get retrieves the summary for a (year, month).
func (s *SummaryService) Get(ctx context.Context, year, month int) (model.MonthlySummary, error) {
	summary, found, err := s.summaries.GetByYearMonth(ctx, year, month)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	if !found {
		return model.MonthlySummary{}, apperrors.ErrSummaryNotFound
	}

	return summary, nil
}

// List retrieves all summaries in chronological order.
func (s *SummaryService) List(ctx context.Context) ([]model.MonthlySummary, error) {
	return s.summaries.ListAll(ctx)
}

// ListByYear retrieves all summaries for a year ordered by month.
func (s *SummaryService) ListByYear(ctx context.Context, year int) ([]model.MonthlySummary, error) {
	return s.summaries.ListByYear(ctx, year)
}

// ListLast12 retrieves the trailing 12 months of summaries ending with the
// current month.
func (s *SummaryService) ListLast12(ctx context.Context) ([]model.MonthlySummary, error) {
	now := s.clk.Now()
	return s.summaries.ListLast12(ctx, now.Year(), int(now.Month()))
}

// Delete removes a stored summary.
func (s *SummaryService) Delete(ctx context.Context, year, month int) error {
	deleted, err := s.summaries.DeleteByYearMonth(ctx, year, month)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrSummaryNotFound
	}

	return nil
}
