package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliotracker/backend/internal/model"
)

// cashAccountID pins the singleton row. The ledger tracks exactly one cash
// balance; get-or-create against a fixed id replaces any "first row" query
// ordering tricks.
const cashAccountID = 1

// CashRepository provides data access methods for the cash_account table.
type CashRepository struct {
	db DBTX
}

// NewCashRepository creates a new CashRepository with the provided database connection.
func NewCashRepository(db DBTX) *CashRepository {
	return &CashRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CashRepository) WithTx(tx *sql.Tx) *CashRepository {
	return &CashRepository{db: tx}
}

// Get retrieves the cash account. The boolean is false when no account has
// been created yet; that is not an error.
func (r *CashRepository) Get(ctx context.Context) (model.CashAccount, bool, error) {
	query := `
		SELECT id, balance, last_updated
		FROM cash_account
		WHERE id = ?
	`

	var account model.CashAccount
	var updatedStr string

	err := r.db.QueryRowContext(ctx, query, cashAccountID).Scan(
		&account.ID,
		&account.Balance,
		&updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CashAccount{}, false, nil
	}
	if err != nil {
		return model.CashAccount{}, false, fmt.Errorf("failed to query cash_account table: %w", err)
	}

	account.LastUpdated, err = ParseTime(updatedStr)
	if err != nil {
		return model.CashAccount{}, false, err
	}

	return account, true, nil
}

// Upsert creates or replaces the singleton cash account row.
func (r *CashRepository) Upsert(ctx context.Context, account model.CashAccount) error {
	query := `
		INSERT INTO cash_account (id, balance, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			balance = excluded.balance,
			last_updated = excluded.last_updated
	`

	_, err := r.db.ExecContext(ctx, query,
		cashAccountID,
		account.Balance,
		account.LastUpdated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cash_account: %w", err)
	}

	return nil
}
