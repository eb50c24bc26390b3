// Command seed-providers loads the default external provider catalog into the
// database and, when the matching environment variables are set, stores
// encrypted system keys for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/config"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
	"github.com/Hazhaz1412/smart-city-iot/pkg/vault"
)

func defaultProviders() []*entities.ExternalAPIProvider {
	return []*entities.ExternalAPIProvider{
		{
			Name:            "OpenWeatherMap",
			Slug:            "openweathermap",
			Category:        entities.CategoryWeather,
			Description:     "Global weather API with realtime, forecast and historical data. Free tier: 1000 calls/day.",
			BaseURL:         "https://api.openweathermap.org/data/2.5",
			DocsURL:         "https://openweathermap.org/api",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "appid",
			RateLimitPerMin: 60,
			RateLimitPerDay: 1000,
			IsActive:        true,
		},
		{
			Name:            "OpenAQ",
			Slug:            "openaq",
			Category:        entities.CategoryAirQuality,
			Description:     "Global air quality API backed by government monitoring stations. Free.",
			BaseURL:         "https://api.openaq.org/v3",
			DocsURL:         "https://docs.openaq.org/",
			AuthType:        entities.AuthAPIKeyHeader,
			AuthKeyName:     "X-API-Key",
			RateLimitPerMin: 60,
			RateLimitPerDay: 5000,
			IsActive:        true,
		},
		{
			Name:            "WAQI (AQIcn)",
			Slug:            "waqi",
			Category:        entities.CategoryAirQuality,
			Description:     "World Air Quality Index with wide station coverage in Vietnam. Limited free tier.",
			BaseURL:         "https://api.waqi.info",
			DocsURL:         "https://aqicn.org/api/",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "token",
			RateLimitPerMin: 30,
			RateLimitPerDay: 1000,
			IsActive:        true,
		},
		{
			Name:            "IQAir",
			Slug:            "iqair",
			Category:        entities.CategoryAirQuality,
			Description:     "Premium air quality API with detailed data, including Vietnam coverage.",
			BaseURL:         "https://api.airvisual.com/v2",
			DocsURL:         "https://www.iqair.com/air-pollution-data-api",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "key",
			RateLimitPerMin: 5,
			RateLimitPerDay: 100,
			IsActive:        true,
			IsPremium:       true,
		},
		{
			Name:            "Google Maps",
			Slug:            "google-maps",
			Category:        entities.CategoryMaps,
			Description:     "Google Maps Platform API for maps, directions and places.",
			BaseURL:         "https://maps.googleapis.com/maps/api",
			DocsURL:         "https://developers.google.com/maps/documentation",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "key",
			RateLimitPerMin: 100,
			RateLimitPerDay: 2500,
			IsActive:        true,
			IsPremium:       true,
		},
		{
			Name:            "HERE Maps",
			Slug:            "here-maps",
			Category:        entities.CategoryMaps,
			Description:     "HERE Maps API, an alternative to Google Maps with better pricing.",
			BaseURL:         "https://router.hereapi.com/v8",
			DocsURL:         "https://developer.here.com/documentation",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "apiKey",
			RateLimitPerMin: 100,
			RateLimitPerDay: 250000,
			IsActive:        true,
		},
		{
			Name:            "TomTom Traffic",
			Slug:            "tomtom-traffic",
			Category:        entities.CategoryTraffic,
			Description:     "TomTom Traffic API for realtime traffic data.",
			BaseURL:         "https://api.tomtom.com/traffic/services",
			DocsURL:         "https://developer.tomtom.com/traffic-api",
			AuthType:        entities.AuthAPIKeyQuery,
			AuthKeyName:     "key",
			RateLimitPerMin: 30,
			RateLimitPerDay: 2500,
			IsActive:        true,
		},
		{
			Name:            "Firebase Cloud Messaging",
			Slug:            "firebase-fcm",
			Category:        entities.CategoryOther,
			Description:     "Firebase Cloud Messaging for push notifications.",
			BaseURL:         "https://fcm.googleapis.com/v1",
			DocsURL:         "https://firebase.google.com/docs/cloud-messaging",
			AuthType:        entities.AuthBearerToken,
			AuthKeyName:     "Authorization",
			RateLimitPerMin: 500,
			RateLimitPerDay: 100000,
			IsActive:        true,
		},
		{
			Name:            "Telegram Bot",
			Slug:            "telegram-bot",
			Category:        entities.CategoryOther,
			Description:     "Telegram Bot API for sending notifications. Token travels in the URL path.",
			BaseURL:         "https://api.telegram.org/bot",
			DocsURL:         "https://core.telegram.org/bots/api",
			AuthType:        entities.AuthNone,
			RateLimitPerMin: 30,
			RateLimitPerDay: 1000,
			IsActive:        true,
		},
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.URL(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	ctx := context.Background()
	providerRepo := repositories.NewProviderRepository(db)
	systemKeyRepo := repositories.NewSystemAPIKeyRepository(db)
	credentialVault := vault.New(cfg.Security.MasterSecret)

	created, updated := 0, 0
	for _, p := range defaultProviders() {
		existing, err := providerRepo.FindBySlug(ctx, p.Slug)
		switch {
		case err == nil:
			p.ID = existing.ID
			if err := providerRepo.Update(ctx, p); err != nil {
				return fmt.Errorf("failed to update provider %s: %w", p.Slug, err)
			}
			updated++
			log.Printf("Updated: %s", p.Name)
		case errors.Is(err, domainerrors.ErrNotFound):
			if err := providerRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("failed to create provider %s: %w", p.Slug, err)
			}
			created++
			log.Printf("Created: %s", p.Name)
		default:
			return fmt.Errorf("failed to look up provider %s: %w", p.Slug, err)
		}
	}

	// Bootstrap system keys from the environment when present.
	envKeys := map[string]string{
		"openweathermap": os.Getenv("OPENWEATHERMAP_API_KEY"),
		"openaq":         os.Getenv("OPENAQ_API_KEY"),
		"waqi":           os.Getenv("WAQI_API_KEY"),
	}

	for slug, apiKey := range envKeys {
		if apiKey == "" {
			continue
		}
		provider, err := providerRepo.FindBySlug(ctx, slug)
		if err != nil {
			continue
		}
		encrypted, err := credentialVault.Encrypt(apiKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt system key for %s: %w", slug, err)
		}
		key := &entities.SystemAPIKey{
			ProviderID:        provider.ID,
			EncryptedKey:      encrypted,
			MaskedKey:         utils.MaskAPIKey(apiKey),
			IsActive:          true,
			AllowUserOverride: true,
		}
		if err := systemKeyRepo.Upsert(ctx, key); err != nil {
			return fmt.Errorf("failed to store system key for %s: %w", slug, err)
		}
		log.Printf("System key set for: %s", provider.Name)
	}

	log.Printf("Done! Created: %d, Updated: %d", created, updated)
	return nil
}
