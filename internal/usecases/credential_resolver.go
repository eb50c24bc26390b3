package usecases

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
	"github.com/Hazhaz1412/smart-city-iot/pkg/vault"
)

// CredentialResolver picks the best available API key for a provider.
// Precedence: the caller's own key when allowed, else the shared system key,
// else a deploy-time environment default.
type CredentialResolver struct {
	providerRepo  repositories.ProviderRepository
	userKeyRepo   repositories.UserAPIKeyRepository
	systemKeyRepo repositories.SystemAPIKeyRepository
	vault         *vault.Vault
}

func NewCredentialResolver(
	providerRepo repositories.ProviderRepository,
	userKeyRepo repositories.UserAPIKeyRepository,
	systemKeyRepo repositories.SystemAPIKeyRepository,
	v *vault.Vault,
) *CredentialResolver {
	return &CredentialResolver{
		providerRepo:  providerRepo,
		userKeyRepo:   userKeyRepo,
		systemKeyRepo: systemKeyRepo,
		vault:         v,
	}
}

// Resolve returns the API key for the given provider slug, preferring the
// caller's own key when userID is set. The second return is false when no
// usable key exists anywhere. A missing or inactive provider record never
// blocks resolution; it falls through to the environment.
func (r *CredentialResolver) Resolve(ctx context.Context, slug string, userID *uuid.UUID) (string, bool) {
	provider, err := r.providerRepo.FindBySlug(ctx, slug)
	if err != nil || !provider.IsActive {
		return r.resolveFromEnv(slug)
	}

	systemKey, sysErr := r.systemKeyRepo.FindByProviderID(ctx, provider.ID)

	// The user key applies only when no system key exists or the system key
	// explicitly allows overriding.
	userAllowed := sysErr != nil || systemKey.AllowUserOverride

	if userID != nil && userAllowed {
		userKey, err := r.userKeyRepo.FindByUserAndProvider(ctx, *userID, provider.ID)
		if err == nil && userKey.IsActive {
			if plaintext, err := r.vault.Decrypt(userKey.EncryptedKey); err == nil && plaintext != "" {
				_ = r.userKeyRepo.RecordUsage(ctx, userKey.ID)
				metrics.GetMetrics().RecordCredentialResolution(slug, "user")
				return plaintext, true
			}
			logger.Warn(ctx, "User API key could not be decrypted",
				zap.String("provider", slug),
				zap.String("user_id", userID.String()),
			)
		}
	}

	if sysErr == nil && systemKey.IsActive {
		if plaintext, err := r.vault.Decrypt(systemKey.EncryptedKey); err == nil && plaintext != "" {
			_ = r.systemKeyRepo.RecordUsage(ctx, systemKey.ID)
			metrics.GetMetrics().RecordCredentialResolution(slug, "system")
			return plaintext, true
		}
		logger.Warn(ctx, "System API key could not be decrypted",
			zap.String("provider", slug),
		)
	}

	return r.resolveFromEnv(slug)
}

func (r *CredentialResolver) resolveFromEnv(slug string) (string, bool) {
	envName := strings.ToUpper(strings.ReplaceAll(slug, "-", "_")) + "_API_KEY"
	if value := os.Getenv(envName); value != "" {
		metrics.GetMetrics().RecordCredentialResolution(slug, "env")
		return value, true
	}
	metrics.GetMetrics().RecordCredentialResolution(slug, "none")
	return "", false
}
