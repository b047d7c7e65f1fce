package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
)

// TransactionService is the trade engine. Buy and Sell each run their cash
// movement, position update, and history append inside one database
// transaction, so a failure at any step leaves all three untouched. A mutex
// serializes trades; the engine manages a single portfolio and check-then-act
// races across two concurrent orders are not worth row locking for.
type TransactionService struct {
	db       *sql.DB
	cash     *CashService
	holdings *HoldingService
	trades   *TradeService
	clk      clock.Clock

	mu sync.Mutex
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(db *sql.DB, cash *CashService, holdings *HoldingService, trades *TradeService, clk clock.Clock) *TransactionService {
	return &TransactionService{
		db:       db,
		cash:     cash,
		holdings: holdings,
		trades:   trades,
		clk:      clk,
	}
}

// Buy purchases quantity shares of ticker at price. The trade date defaults
// to today when zero. Fails with an insufficient-funds error before touching
// anything when cash does not cover the total cost.
func (s *TransactionService) Buy(ctx context.Context, ticker string, quantity int64, price decimal.Decimal, date time.Time) (model.BuyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date.IsZero() {
		date = s.clk.Today()
	}

	totalCost := price.Mul(decimal.NewFromInt(quantity))

	if err := s.cash.CheckFunds(ctx, totalCost); err != nil {
		return model.BuyResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.BuyResult{}, fmt.Errorf("failed to begin buy transaction: %w", err)
	}
	defer tx.Rollback()

	cash := s.cash.WithTx(tx)
	holdings := s.holdings.WithTx(tx)
	trades := s.trades.WithTx(tx)

	account, ok, err := cash.Subtract(ctx, totalCost)
	if err != nil {
		return model.BuyResult{}, err
	}
	if !ok {
		// The pre-check passed but the balance moved underneath us.
		return model.BuyResult{}, &apperrors.InsufficientFundsError{
			Required:  totalCost,
			Available: account.Balance,
		}
	}

	trade, err := trades.Record(ctx, model.Trade{
		Date:     date,
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
		Side:     model.TradeSideBuy,
	})
	if err != nil {
		return model.BuyResult{}, err
	}

	holding, err := holdings.UpsertBuy(ctx, trade)
	if err != nil {
		return model.BuyResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BuyResult{}, fmt.Errorf("failed to commit buy transaction: %w", err)
	}

	return model.BuyResult{
		TotalCost:     totalCost,
		RemainingCash: account.Balance,
		Holding:       &holding,
		Trade:         trade,
	}, nil
}

// Sell disposes of quantity shares of ticker at price. The trade date
// defaults to today when zero. Fails before touching anything when no
// position exists or the position is smaller than the requested quantity.
// Selling the whole position removes it; Holding is nil in the result.
func (s *TransactionService) Sell(ctx context.Context, ticker string, quantity int64, price decimal.Decimal, date time.Time) (model.SellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date.IsZero() {
		date = s.clk.Today()
	}

	existing, err := s.holdings.GetByTicker(ctx, ticker)
	if err != nil {
		return model.SellResult{}, err
	}
	if existing.Quantity < quantity {
		return model.SellResult{}, &apperrors.InsufficientSharesError{
			Ticker:    ticker,
			Requested: quantity,
			Available: existing.Quantity,
		}
	}

	totalProceeds := price.Mul(decimal.NewFromInt(quantity))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.SellResult{}, fmt.Errorf("failed to begin sell transaction: %w", err)
	}
	defer tx.Rollback()

	cash := s.cash.WithTx(tx)
	holdings := s.holdings.WithTx(tx)
	trades := s.trades.WithTx(tx)

	account, err := cash.Add(ctx, totalProceeds)
	if err != nil {
		return model.SellResult{}, err
	}

	trade, err := trades.Record(ctx, model.Trade{
		Date:     date,
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
		Side:     model.TradeSideSell,
	})
	if err != nil {
		return model.SellResult{}, err
	}

	holding, err := holdings.ApplySell(ctx, trade)
	if err != nil {
		return model.SellResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.SellResult{}, fmt.Errorf("failed to commit sell transaction: %w", err)
	}

	return model.SellResult{
		TotalProceeds: totalProceeds,
		RemainingCash: account.Balance,
		Holding:       holding,
		Trade:         trade,
	}, nil
}
