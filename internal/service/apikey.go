package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/repository"
	"github.com/linkvigia/linkvigia/internal/secrets"
)

// ErrInvalidKeyType indicates a key type outside the known set.
var ErrInvalidKeyType = errors.New("invalid key type")

// APIKeyService stores third-party credentials for users.
// Values are encrypted before they reach the repository and are never
// decrypted on the read path exposed by this service.
type APIKeyService struct {
	repo   *repository.Repository
	cipher *secrets.Cipher
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(repo *repository.Repository, cipher *secrets.Cipher) *APIKeyService {
	return &APIKeyService{repo: repo, cipher: cipher}
}

// SaveKey encrypts and upserts a credential for (user, key type).
func (s *APIKeyService) SaveKey(ctx context.Context, userID, keyType, keyValue string) error {
	if keyType == "" || keyValue == "" {
		return ErrMissingFields
	}

	kt, err := model.ParseKeyType(keyType)
	if err != nil {
		return ErrInvalidKeyType
	}

	sealed, err := s.cipher.Encrypt(ctx, keyValue)
	if err != nil {
		return fmt.Errorf("save key: %w", err)
	}

	now := time.Now().UTC()
	key := &model.APIKey{
		ID:        ulid.Make().String(),
		UserID:    userID,
		KeyType:   kt,
		KeyValue:  sealed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.UpsertAPIKey(ctx, key); err != nil {
		return fmt.Errorf("save key: %w", err)
	}

	return nil
}

// KeyStatus reports which known key types have a stored value.
func (s *APIKeyService) KeyStatus(ctx context.Context, userID string) (model.KeyStatus, error) {
	status, err := s.repo.GetKeyStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("key status: %w", err)
	}
	return status, nil
}
