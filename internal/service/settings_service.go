package service

import (
	"context"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/repository"
)

// Setting keys stored in the app_setting table.
const (
	settingNewsAPIKey = "news_api_key"
)

// SettingsService stores runtime settings, encrypting secret values at rest
// with the configured fernet key.
type SettingsService struct {
	repo *repository.SettingRepository
	key  *fernet.Key
}

// NewSettingsService creates a new SettingsService. The fernet key is the
// base64 key string from configuration; an empty string disables secret
// storage.
func NewSettingsService(repo *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	s := &SettingsService{repo: repo}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// SetNewsAPIKey encrypts and stores the news provider API key.
func (s *SettingsService) SetNewsAPIKey(ctx context.Context, apiKey string) error {
	if s.key == nil {
		return fmt.Errorf("secret storage requires a fernet key")
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt news api key: %w", err)
	}

	return s.repo.Set(ctx, settingNewsAPIKey, string(token))
}

// NewsAPIKey retrieves and decrypts the news provider API key. Returns
// ErrNewsNotConfigured when no key has been stored or secret storage is
// disabled.
func (s *SettingsService) NewsAPIKey(ctx context.Context) (string, error) {
	if s.key == nil {
		return "", apperrors.ErrNewsNotConfigured
	}

	token, found, err := s.repo.Get(ctx, settingNewsAPIKey)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.ErrNewsNotConfigured
	}

	// TTL 0 skips expiry; stored keys do not age out.
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt news api key")
	}

	return string(plain), nil
}

// ClearNewsAPIKey removes the stored news provider API key.
func (s *SettingsService) ClearNewsAPIKey(ctx context.Context) error {
	_, err := s.repo.Delete(ctx, settingNewsAPIKey)
	return err
}
