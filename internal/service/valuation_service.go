package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/quote"
	"github.com/portfoliotracker/backend/internal/repository"
)

// ValuationService computes profit and loss figures. Realized gains are
// reconstructed from trade history; unrealized gains compare live quotes
// against the weighted-average cost of open positions.
type ValuationService struct {
	trades   *repository.TradeRepository
	holdings *repository.HoldingRepository
	summary  *repository.SummaryRepository
	quotes   quote.Provider
	clk      clock.Clock
}

// NewValuationService creates a new ValuationService.
func NewValuationService(
	trades *repository.TradeRepository,
	holdings *repository.HoldingRepository,
	summary *repository.SummaryRepository,
	quotes quote.Provider,
	clk clock.Clock,
) *ValuationService {
	return &ValuationService{
		trades:   trades,
		holdings: holdings,
		summary:  summary,
		quotes:   quotes,
		clk:      clk,
	}
}

// RealizedGain computes the gain locked in by a single sell trade: proceeds
// minus the average price of all buys of that ticker strictly before the
// sell date, times the quantity sold. A sell with no prior buys contributes
// zero rather than failing; history corrections can produce such rows.
func (s *ValuationService) RealizedGain(ctx context.Context, sell model.Trade) (decimal.Decimal, error) {
	if sell.Side != model.TradeSideSell {
		return decimal.Zero, nil
	}

	buys, err := s.trades.ListBuysBefore(ctx, sell.Ticker, sell.Date)
	if err != nil {
		return decimal.Zero, err
	}
	if len(buys) == 0 {
		return decimal.Zero, nil
	}

	totalValue := decimal.Zero
	totalQty := int64(0)
	for _, b := range buys {
		totalValue = totalValue.Add(b.TotalValue())
		totalQty += b.Quantity
	}

	avgBuyPrice := totalValue.Div(decimal.NewFromInt(totalQty)).Round(2)
	qty := decimal.NewFromInt(sell.Quantity)

	return sell.Price.Mul(qty).Sub(avgBuyPrice.Mul(qty)), nil
}

// RealizedGainInRange sums realized gains over all sells within [start, end].
func (s *ValuationService) RealizedGainInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	trades, err := s.trades.ListByDateRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range trades {
		if t.Side != model.TradeSideSell {
			continue
		}
		gain, err := s.RealizedGain(ctx, t)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(gain)
	}

	return total.Round(2), nil
}

// TotalRealizedGains sums realized gains over the entire trade history.
func (s *ValuationService) TotalRealizedGains(ctx context.Context) (decimal.Decimal, error) {
	sells, err := s.trades.ListBySide(ctx, model.TradeSideSell)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range sells {
		gain, err := s.RealizedGain(ctx, t)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(gain)
	}

	return total.Round(2), nil
}

// TotalUnrealizedGains sums, over all open positions, the spread between the
// current quote and the average cost. A position whose quote cannot be
// fetched is valued at cost and contributes zero.
func (s *ValuationService) TotalUnrealizedGains(ctx context.Context) (decimal.Decimal, error) {
	return s.unrealizedGains(ctx, time.Time{})
}

// UnrealizedGainAsOf sums the same spread over positions whose last
// acquisition is on or before the given date. Positions first acquired later
// are skipped so a past month's figure is not inflated by stock bought
// afterwards.
func (s *ValuationService) UnrealizedGainAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return s.unrealizedGains(ctx, asOf)
}

// unrealizedGains computes the quote-versus-cost spread across holdings. A
// zero asOf disables the acquisition-date cutoff.
func (s *ValuationService) unrealizedGains(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, h := range holdings {
		if !asOf.IsZero() && h.LastAcquired.After(asOf) {
			continue
		}
		q, err := s.quotes.GetQuote(ctx, h.Ticker)
		price := quote.PriceOrFallback(q, err, h.AverageCost)
		if err != nil {
			log.Printf("quote fetch failed for %s, valuing at cost: %v", h.Ticker, err)
		}
		spread := price.Sub(h.AverageCost).Mul(decimal.NewFromInt(h.Quantity))
		total = total.Add(spread)
	}

	return total.Round(2), nil
}

// MonthlyPnL computes the profit and loss for one month. Past months with a
// cached summary use the stored figures. Months computed live use current
// quotes for the unrealized leg, an approximation carried over from how the
// figures have always been presented.
func (s *ValuationService) MonthlyPnL(ctx context.Context, year int, month time.Month) (model.MonthlyPnL, error) {
	now := s.clk.Now()
	isPast := year < now.Year() || (year == now.Year() && month < now.Month())

	if isPast {
		cached, found, err := s.summary.GetByYearMonth(ctx, year, int(month))
		if err != nil {
			return model.MonthlyPnL{}, err
		}
		if found {
			return model.MonthlyPnL{
				Year:       year,
				Month:      int(month),
				Realized:   cached.RealizedGain,
				Unrealized: cached.UnrealizedGain,
				FromCache:  true,
			}, nil
		}
	}

	start, end := clock.MonthBounds(year, month, s.clk.Location())
	realized, err := s.RealizedGainInRange(ctx, start, end)
	if err != nil {
		return model.MonthlyPnL{}, err
	}

	unrealized, err := s.UnrealizedGainAsOf(ctx, end)
	if err != nil {
		return model.MonthlyPnL{}, err
	}

	return model.MonthlyPnL{
		Year:       year,
		Month:      int(month),
		Realized:   realized,
		Unrealized: unrealized,
	}, nil
}

// monthsBack reports the last n (year, month) pairs ending with the current
// month, oldest first.
func (s *ValuationService) monthsBack(n int) [][2]int {
	now := s.clk.Now()
	months := make([][2]int, 0, n)
	y, m := now.Year(), now.Month()
	for i := n - 1; i >= 0; i-- {
		t := time.Date(y, m, 1, 0, 0, 0, 0, s.clk.Location()).AddDate(0, -i, 0)
		months = append(months, [2]int{t.Year(), int(t.Month())})
	}
	return months
}

// MonthlyReport assembles per-month profit and loss for the trailing months
// plus running totals across the whole history.
func (s *ValuationService) MonthlyReport(ctx context.Context, months int) (model.PnLReport, error) {
	if months <= 0 {
		months = 7
	}

	report := model.PnLReport{Monthly: []model.MonthlyPnL{}}
	for _, ym := range s.monthsBack(months) {
		pnl, err := s.MonthlyPnL(ctx, ym[0], time.Month(ym[1]))
		if err != nil {
			return model.PnLReport{}, err
		}
		report.Monthly = append(report.Monthly, pnl)
	}

	realized, err := s.TotalRealizedGains(ctx)
	if err != nil {
		return model.PnLReport{}, err
	}
	unrealized, err := s.TotalUnrealizedGains(ctx)
	if err != nil {
		return model.PnLReport{}, err
	}

	report.TotalRealized = realized
	report.TotalUnrealized = unrealized
	report.TotalPnL = realized.Add(unrealized)

	return report, nil
}
