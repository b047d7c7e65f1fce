package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
)

// HoldingService maintains the current portfolio positions. Cost basis uses
// the weighted-average method: buys fold into a single average cost per
// ticker, sells reduce quantity without touching the average.
type HoldingService struct {
	repo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService.
func NewHoldingService(repo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{repo: repo}
}

// WithTx returns a copy of the service bound to the given transaction.
func (s *HoldingService) WithTx(tx *sql.Tx) *HoldingService {
	return &HoldingService{repo: s.repo.WithTx(tx)}
}

// List retrieves all open positions ordered by ticker.
func (s *HoldingService) List(ctx context.Context) ([]model.Holding, error) {
	return s.repo.List(ctx)
}

// Get retrieves a holding by ID.
func (s *HoldingService) Get(ctx context.Context, id string) (model.Holding, error) {
	h, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Holding{}, err
	}
	if !found {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}

	return h, nil
}

// GetByTicker retrieves the open position for a ticker.
func (s *HoldingService) GetByTicker(ctx context.Context, ticker string) (model.Holding, error) {
	h, found, err := s.repo.GetByTicker(ctx, ticker)
	if err != nil {
		return model.Holding{}, err
	}
	if !found {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}

	return h, nil
}

// UpsertBuy folds a purchase into the position for a ticker. A new position
// starts at the trade price; an existing one gets a recomputed weighted
// average rounded to cents.
func (s *HoldingService) UpsertBuy(ctx context.Context, trade model.Trade) (model.Holding, error) {
	existing, found, err := s.repo.GetByTicker(ctx, trade.Ticker)
	if err != nil {
		return model.Holding{}, err
	}

	if !found {
		h := model.Holding{
			ID:           uuid.New().String(),
			Ticker:       trade.Ticker,
			Quantity:     trade.Quantity,
			AverageCost:  trade.Price,
			LastAcquired: trade.Date,
		}
		if err := s.repo.Insert(ctx, h); err != nil {
			return model.Holding{}, err
		}
		return h, nil
	}

	oldTotal := existing.AverageCost.Mul(decimal.NewFromInt(existing.Quantity))
	newCost := trade.Price.Mul(decimal.NewFromInt(trade.Quantity))
	newQty := existing.Quantity + trade.Quantity

	existing.Quantity = newQty
	existing.AverageCost = oldTotal.Add(newCost).Div(decimal.NewFromInt(newQty)).Round(2)
	existing.LastAcquired = trade.Date

	if err := s.repo.Update(ctx, existing); err != nil {
		return model.Holding{}, err
	}

	return existing, nil
}

// ApplySell reduces the position for a sale. The average cost stays as it
// was; only buys move it. A sale of the full quantity deletes the row and
// returns nil.
func (s *HoldingService) ApplySell(ctx context.Context, trade model.Trade) (*model.Holding, error) {
	existing, found, err := s.repo.GetByTicker(ctx, trade.Ticker)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrHoldingNotFound
	}

	if existing.Quantity < trade.Quantity {
		return nil, &apperrors.InsufficientSharesError{
			Ticker:    trade.Ticker,
			Requested: trade.Quantity,
			Available: existing.Quantity,
		}
	}

	if existing.Quantity == trade.Quantity {
		if _, err := s.repo.DeleteByID(ctx, existing.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	existing.Quantity -= trade.Quantity
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return &existing, nil
}

// Create adds a position directly, bypassing the trade engine. Intended for
// importing an existing portfolio.
func (s *HoldingService) Create(ctx context.Context, h model.Holding) (model.Holding, error) {
	if _, found, err := s.repo.GetByTicker(ctx, h.Ticker); err != nil {
		return model.Holding{}, err
	} else if found {
		return model.Holding{}, fmt.Errorf("position for %s already exists", h.Ticker)
	}

	h.ID = uuid.New().String()
	if err := s.repo.Insert(ctx, h); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// Update replaces the mutable fields of an existing holding.
func (s *HoldingService) Update(ctx context.Context, h model.Holding) (model.Holding, error) {
	if _, found, err := s.repo.GetByID(ctx, h.ID); err != nil {
		return model.Holding{}, err
	} else if !found {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// Delete removes a holding by ID.
func (s *HoldingService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// Stats summarizes the open positions.
func (s *HoldingService) Stats(ctx context.Context) (model.PortfolioStats, error) {
	holdings, err := s.repo.List(ctx)
	if err != nil {
		return model.PortfolioStats{}, err
	}

	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.BookValue())
	}

	return model.PortfolioStats{
		Positions:      len(holdings),
		TotalBookValue: total,
	}, nil
}
