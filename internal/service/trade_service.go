package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
)

// TradeService maintains the append-only trade history.
type TradeService struct {
	repo *repository.TradeRepository
	clk  clock.Clock
}

// NewTradeService creates a new TradeService.
func NewTradeService(repo *repository.TradeRepository, clk clock.Clock) *TradeService {
	return &TradeService{repo: repo, clk: clk}
}

// WithTx returns a copy of the service bound to the given transaction.
func (s *TradeService) WithTx(tx *sql.Tx) *TradeService {
	return &TradeService{repo: s.repo.WithTx(tx), clk: s.clk}
}

// Record appends a trade, assigning its ID and creation timestamp.
func (s *TradeService) Record(ctx context.Context, t model.Trade) (model.Trade, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = s.clk.Now()

	if err := s.repo.Insert(ctx, t); err != nil {
		return model.Trade{}, err
	}

	return t, nil
}

// Get retrieves a trade by ID.
func (s *TradeService) Get(ctx context.Context, id string) (model.Trade, error) {
	t, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Trade{}, err
	}
	if !found {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}

	return t, nil
}

// List retrieves the trade history, most recent first, optionally filtered
// by ticker and/or side. Empty filter values match everything.
func (s *TradeService) List(ctx context.Context, ticker string, side model.TradeSide) ([]model.Trade, error) {
	switch {
	case ticker != "" && side != "":
		trades, err := s.repo.ListByTicker(ctx, ticker)
		if err != nil {
			return nil, err
		}
		filtered := []model.Trade{}
		for _, t := range trades {
			if t.Side == side {
				filtered = append(filtered, t)
			}
		}
		return filtered, nil
	case ticker != "":
		return s.repo.ListByTicker(ctx, ticker)
	case side != "":
		return s.repo.ListBySide(ctx, side)
	default:
		return s.repo.ListAll(ctx)
	}
}

// ListByDateRange retrieves trades within [start, end], oldest first.
func (s *TradeService) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Trade, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	return s.repo.ListByDateRange(ctx, start, end)
}

// Update rewrites a trade record. This corrects history only; it does not
// replay the trade against cash or holdings.
func (s *TradeService) Update(ctx context.Context, t model.Trade) (model.Trade, error) {
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return model.Trade{}, err
	}
	if !updated {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}

	return s.Get(ctx, t.ID)
}

// Delete removes a trade record. Like Update, a history correction only.
func (s *TradeService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrTradeNotFound
	}

	return nil
}
