package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SettingRepository provides data access methods for the app_setting table,
// a simple key/value store for runtime configuration such as encrypted API
// keys.
type SettingRepository struct {
	db DBTX
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db DBTX) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value. The boolean is false when the key is absent.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_setting WHERE "key" = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query app_setting table: %w", err)
	}

	return value, true, nil
}

// Set creates or replaces a setting value, stamping the write time.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_setting ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx, query, key, value, updatedAt); err != nil {
		return fmt.Errorf("failed to upsert app_setting: %w", err)
	}

	return nil
}

// Delete removes a setting. Returns false when the key was absent.
func (r *SettingRepository) Delete(ctx context.Context, key string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM app_setting WHERE "key" = ?`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete app_setting: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
