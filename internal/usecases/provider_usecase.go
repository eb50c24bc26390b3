package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
)

// ProviderUsecase manages the external API provider registry.
type ProviderUsecase struct {
	providerRepo repositories.ProviderRepository
	resolver     *CredentialResolver
	probe        *http.Client
}

func NewProviderUsecase(providerRepo repositories.ProviderRepository, resolver *CredentialResolver) *ProviderUsecase {
	return &ProviderUsecase{
		providerRepo: providerRepo,
		resolver:     resolver,
		probe:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (u *ProviderUsecase) Create(ctx context.Context, input *entities.CreateProviderInput) (*entities.ExternalAPIProvider, error) {
	if !entities.ValidCategory(input.Category) {
		return nil, domainerrors.BadRequest("unknown provider category")
	}
	if !entities.ValidAuthType(input.AuthType) {
		return nil, domainerrors.BadRequest("unknown auth type")
	}

	if _, err := u.providerRepo.FindBySlug(ctx, input.Slug); err == nil {
		return nil, domainerrors.Conflict("provider slug already registered")
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	provider := &entities.ExternalAPIProvider{
		Name:            input.Name,
		Slug:            input.Slug,
		Category:        entities.ProviderCategory(input.Category),
		BaseURL:         input.BaseURL,
		DocsURL:         input.DocsURL,
		Description:     input.Description,
		AuthType:        entities.AuthType(input.AuthType),
		AuthKeyName:     input.AuthKeyName,
		DefaultHeaders:  input.DefaultHeaders,
		RateLimitPerMin: input.RateLimitPerMin,
		RateLimitPerDay: input.RateLimitPerDay,
		IsActive:        isActive,
		IsPremium:       input.IsPremium,
	}

	if err := u.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (u *ProviderUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.ExternalAPIProvider, error) {
	return u.providerRepo.FindByID(ctx, id)
}

func (u *ProviderUsecase) GetBySlug(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error) {
	return u.providerRepo.FindBySlug(ctx, slug)
}

func (u *ProviderUsecase) List(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error) {
	return u.providerRepo.List(ctx, category, activeOnly)
}

func (u *ProviderUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProviderInput) (*entities.ExternalAPIProvider, error) {
	provider, err := u.providerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		provider.Name = *input.Name
	}
	if input.Category != nil {
		if !entities.ValidCategory(*input.Category) {
			return nil, domainerrors.BadRequest("unknown provider category")
		}
		provider.Category = entities.ProviderCategory(*input.Category)
	}
	if input.BaseURL != nil {
		provider.BaseURL = *input.BaseURL
	}
	if input.DocsURL != nil {
		provider.DocsURL = *input.DocsURL
	}
	if input.Description != nil {
		provider.Description = *input.Description
	}
	if input.AuthType != nil {
		if !entities.ValidAuthType(*input.AuthType) {
			return nil, domainerrors.BadRequest("unknown auth type")
		}
		provider.AuthType = entities.AuthType(*input.AuthType)
	}
	if input.AuthKeyName != nil {
		provider.AuthKeyName = *input.AuthKeyName
	}
	if input.DefaultHeaders != nil {
		provider.DefaultHeaders = input.DefaultHeaders
	}
	if input.RateLimitPerMin != nil {
		provider.RateLimitPerMin = *input.RateLimitPerMin
	}
	if input.RateLimitPerDay != nil {
		provider.RateLimitPerDay = *input.RateLimitPerDay
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}
	if input.IsPremium != nil {
		provider.IsPremium = *input.IsPremium
	}

	if err := u.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (u *ProviderUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.providerRepo.Delete(ctx, id)
}

// ConnectivityResult is the outcome of probing a provider's base URL.
type ConnectivityResult struct {
	Provider   string `json:"provider"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"statusCode,omitempty"`
	LatencyMs  int64  `json:"latencyMs"`
	KeyPresent bool   `json:"keyPresent"`
	Error      string `json:"error,omitempty"`
}

// TestConnectivity probes the provider's base URL with the configured auth
// placement applied. It reports reachability, not endpoint correctness.
func (u *ProviderUsecase) TestConnectivity(ctx context.Context, slug string, userID *uuid.UUID) (*ConnectivityResult, error) {
	provider, err := u.providerRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("provider not found")
		}
		return nil, err
	}

	apiKey, keyPresent := u.resolver.Resolve(ctx, provider.Slug, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.BaseURL, nil)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid provider base URL")
	}

	for name, value := range provider.DefaultHeaders {
		req.Header.Set(name, value)
	}

	if keyPresent {
		switch provider.AuthType {
		case entities.AuthAPIKeyQuery:
			q := req.URL.Query()
			q.Set(provider.AuthKeyName, apiKey)
			req.URL.RawQuery = q.Encode()
		case entities.AuthAPIKeyHeader:
			req.Header.Set(provider.AuthKeyName, apiKey)
		case entities.AuthBearerToken:
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}
	}

	result := &ConnectivityResult{
		Provider:   provider.Slug,
		KeyPresent: keyPresent,
	}

	start := time.Now()
	resp, err := u.probe.Do(req)
	result.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		logger.Warn(ctx, "Provider connectivity probe failed",
			zap.String("provider", provider.Slug),
			zap.Error(err),
		)
		result.Error = err.Error()
		return result, nil
	}
	defer resp.Body.Close()

	result.Reachable = true
	result.StatusCode = resp.StatusCode
	return result, nil
}
