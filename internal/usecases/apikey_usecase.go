package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
	"github.com/Hazhaz1412/smart-city-iot/pkg/vault"
)

// APIKeyUsecase manages user and system provider credentials. Plaintext keys
// exist only transiently; storage and responses carry ciphertext and masks.
type APIKeyUsecase struct {
	providerRepo  repositories.ProviderRepository
	userKeyRepo   repositories.UserAPIKeyRepository
	systemKeyRepo repositories.SystemAPIKeyRepository
	vault         *vault.Vault
}

func NewAPIKeyUsecase(
	providerRepo repositories.ProviderRepository,
	userKeyRepo repositories.UserAPIKeyRepository,
	systemKeyRepo repositories.SystemAPIKeyRepository,
	v *vault.Vault,
) *APIKeyUsecase {
	return &APIKeyUsecase{
		providerRepo:  providerRepo,
		userKeyRepo:   userKeyRepo,
		systemKeyRepo: systemKeyRepo,
		vault:         v,
	}
}

// SetUserKey stores or replaces the caller's key for a provider.
func (u *APIKeyUsecase) SetUserKey(ctx context.Context, userID uuid.UUID, providerSlug string, input *entities.SetUserAPIKeyInput) (*entities.UserAPIKey, error) {
	provider, err := u.providerRepo.FindBySlug(ctx, providerSlug)
	if err != nil {
		return nil, domainerrors.NotFound("provider not found")
	}

	encrypted, err := u.vault.Encrypt(input.APIKey)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	key := &entities.UserAPIKey{
		UserID:       userID,
		ProviderID:   provider.ID,
		ProviderSlug: provider.Slug,
		Label:        input.Label,
		EncryptedKey: encrypted,
		MaskedKey:    utils.MaskAPIKey(input.APIKey),
		IsActive:     isActive,
	}

	if err := u.userKeyRepo.Upsert(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// ListUserKeys returns the caller's stored keys, masked.
func (u *APIKeyUsecase) ListUserKeys(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error) {
	return u.userKeyRepo.FindByUserID(ctx, userID)
}

// DeleteUserKey removes the caller's key for a provider.
func (u *APIKeyUsecase) DeleteUserKey(ctx context.Context, userID uuid.UUID, providerSlug string) error {
	provider, err := u.providerRepo.FindBySlug(ctx, providerSlug)
	if err != nil {
		return domainerrors.NotFound("provider not found")
	}

	key, err := u.userKeyRepo.FindByUserAndProvider(ctx, userID, provider.ID)
	if err != nil {
		return domainerrors.NotFound("no key stored for provider")
	}
	return u.userKeyRepo.Delete(ctx, key.ID)
}

// SetSystemKey stores or replaces the platform-wide key for a provider.
func (u *APIKeyUsecase) SetSystemKey(ctx context.Context, providerSlug string, input *entities.SetSystemAPIKeyInput) (*entities.SystemAPIKey, error) {
	provider, err := u.providerRepo.FindBySlug(ctx, providerSlug)
	if err != nil {
		return nil, domainerrors.NotFound("provider not found")
	}

	encrypted, err := u.vault.Encrypt(input.APIKey)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	allowOverride := true
	if input.AllowUserOverride != nil {
		allowOverride = *input.AllowUserOverride
	}

	key := &entities.SystemAPIKey{
		ProviderID:        provider.ID,
		ProviderSlug:      provider.Slug,
		EncryptedKey:      encrypted,
		MaskedKey:         utils.MaskAPIKey(input.APIKey),
		IsActive:          isActive,
		AllowUserOverride: allowOverride,
	}

	if err := u.systemKeyRepo.Upsert(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// ListSystemKeys returns all system keys, masked.
func (u *APIKeyUsecase) ListSystemKeys(ctx context.Context) ([]*entities.SystemAPIKey, error) {
	return u.systemKeyRepo.List(ctx)
}

// DeleteSystemKey removes the system key for a provider.
func (u *APIKeyUsecase) DeleteSystemKey(ctx context.Context, providerSlug string) error {
	provider, err := u.providerRepo.FindBySlug(ctx, providerSlug)
	if err != nil {
		return domainerrors.NotFound("provider not found")
	}

	key, err := u.systemKeyRepo.FindByProviderID(ctx, provider.ID)
	if err != nil {
		return domainerrors.NotFound("no system key stored for provider")
	}
	return u.systemKeyRepo.Delete(ctx, key.ID)
}
