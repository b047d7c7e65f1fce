package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/repository"
)

// CashService manages the single simulated cash balance. A missing account
// row reads as a zero balance; the row is created lazily on the first
// mutation.
type CashService struct {
	repo *repository.CashRepository
	clk  clock.Clock
}

// NewCashService creates a new CashService.
func NewCashService(repo *repository.CashRepository, clk clock.Clock) *CashService {
	return &CashService{repo: repo, clk: clk}
}

// WithTx returns a copy of the service bound to the given transaction.
func (s *CashService) WithTx(tx *sql.Tx) *CashService {
	return &CashService{repo: s.repo.WithTx(tx), clk: s.clk}
}

// Account retrieves the cash account, returning a zero-balance account when
// none exists yet.
func (s *CashService) Account(ctx context.Context) (model.CashAccount, error) {
	account, found, err := s.repo.Get(ctx)
	if err != nil {
		return model.CashAccount{}, err
	}
	if !found {
		return model.CashAccount{Balance: decimal.Zero, LastUpdated: s.clk.Now()}, nil
	}

	return account, nil
}

// Balance retrieves the current cash balance, zero when no account exists.
func (s *CashService) Balance(ctx context.Context) (decimal.Decimal, error) {
	account, err := s.Account(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// Initialize sets the balance to an exact amount, overwriting whatever is
// there. Used to seed or reset the simulation.
func (s *CashService) Initialize(ctx context.Context, amount decimal.Decimal) (model.CashAccount, error) {
	if amount.IsNegative() {
		return model.CashAccount{}, apperrors.ErrNegativeAmount
	}

	account := model.CashAccount{
		Balance:     amount,
		LastUpdated: s.clk.Now(),
	}
	if err := s.repo.Upsert(ctx, account); err != nil {
		return model.CashAccount{}, err
	}

	return account, nil
}

// Add increases the balance by a strictly positive amount.
func (s *CashService) Add(ctx context.Context, amount decimal.Decimal) (model.CashAccount, error) {
	if !amount.IsPositive() {
		return model.CashAccount{}, apperrors.ErrNegativeAmount
	}

	account, err := s.Account(ctx)
	if err != nil {
		return model.CashAccount{}, err
	}

	account.Balance = account.Balance.Add(amount)
	account.LastUpdated = s.clk.Now()
	if err := s.repo.Upsert(ctx, account); err != nil {
		return model.CashAccount{}, err
	}

	return account, nil
}

// Subtract decreases the balance by a strictly positive amount. When the
// balance does not cover the amount, no mutation happens and the boolean is
// false.
func (s *CashService) Subtract(ctx context.Context, amount decimal.Decimal) (model.CashAccount, bool, error) {
	if !amount.IsPositive() {
		return model.CashAccount{}, false, apperrors.ErrNegativeAmount
	}

	account, err := s.Account(ctx)
	if err != nil {
		return model.CashAccount{}, false, err
	}

	if account.Balance.LessThan(amount) {
		return account, false, nil
	}

	account.Balance = account.Balance.Sub(amount)
	account.LastUpdated = s.clk.Now()
	if err := s.repo.Upsert(ctx, account); err != nil {
		return model.CashAccount{}, false, err
	}

	return account, true, nil
}

// CheckFunds verifies that the balance covers the required amount, returning
// a detailed insufficient-funds error when it does not.
func (s *CashService) CheckFunds(ctx context.Context, required decimal.Decimal) error {
	balance, err := s.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to check available funds: %w", err)
	}

	if balance.LessThan(required) {
		return &apperrors.InsufficientFundsError{Required: required, Available: balance}
	}

	return nil
}
