package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/config"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/jobs"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/repositories"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/handlers"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/jwt"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/redis"
	"github.com/Hazhaz1412/smart-city-iot/pkg/vault"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// Initialize JWT service and credential vault
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	credentialVault := vault.New(cfg.Security.MasterSecret)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	providerRepo := repositories.NewProviderRepository(db)
	userKeyRepo := repositories.NewUserAPIKeyRepository(db)
	systemKeyRepo := repositories.NewSystemAPIKeyRepository(db)
	stationRepo := repositories.NewWeatherStationRepository(db)
	sensorRepo := repositories.NewAirQualitySensorRepository(db)
	weatherObsRepo := repositories.NewWeatherObservationRepository(db)
	airObsRepo := repositories.NewAirQualityObservationRepository(db)
	entityRepo := repositories.NewNGSIEntityRepository(db)
	waterRepo := repositories.NewWaterSupplyPointRepository(db)
	drainRepo := repositories.NewDrainagePointRepository(db)
	lightRepo := repositories.NewStreetLightRepository(db)
	meterRepo := repositories.NewEnergyMeterRepository(db)
	towerRepo := repositories.NewTelecomTowerRepository(db)
	flowRepo := repositories.NewTrafficFlowRepository(db)
	incidentRepo := repositories.NewTrafficIncidentRepository(db)
	busRepo := repositories.NewBusStationRepository(db)
	parkingRepo := repositories.NewParkingSpotRepository(db)

	// Initialize broker client and rate limiter
	brokerClient := broker.NewClient(cfg.Broker.URL)
	limiter := redis.NewRateLimiter(redis.GetClient())

	// Initialize usecases
	resolver := usecases.NewCredentialResolver(providerRepo, userKeyRepo, systemKeyRepo, credentialVault)
	publisher := usecases.NewEntityPublisher(entityRepo, brokerClient)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	providerUsecase := usecases.NewProviderUsecase(providerRepo, resolver)
	apiKeyUsecase := usecases.NewAPIKeyUsecase(providerRepo, userKeyRepo, systemKeyRepo, credentialVault)
	syncUsecase := usecases.NewSyncUsecase(stationRepo, sensorRepo, weatherObsRepo, airObsRepo, providerRepo, resolver, publisher, limiter)
	stationUsecase := usecases.NewStationUsecase(stationRepo, sensorRepo, publisher)
	observationUsecase := usecases.NewObservationUsecase(weatherObsRepo, airObsRepo)
	entityUsecase := usecases.NewEntityUsecase(entityRepo, brokerClient)
	infraUsecase := usecases.NewInfrastructureUsecase(waterRepo, drainRepo, lightRepo, meterRepo, towerRepo, publisher)
	trafficUsecase := usecases.NewTrafficUsecase(flowRepo, incidentRepo, busRepo, parkingRepo, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	providerHandler := handlers.NewProviderHandler(providerUsecase)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyUsecase)
	integrationHandler := handlers.NewIntegrationHandler(syncUsecase)
	stationHandler := handlers.NewStationHandler(stationUsecase)
	observationHandler := handlers.NewObservationHandler(observationUsecase)
	entityHandler := handlers.NewEntityHandler(entityUsecase)
	infraHandler := handlers.NewInfrastructureHandler(infraUsecase)
	trafficHandler := handlers.NewTrafficHandler(trafficUsecase)

	// Auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtService)

	// Start background sync job
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := jobs.NewSyncScheduler(syncUsecase, cfg.Sync.Interval)
	if cfg.Sync.Enabled {
		go scheduler.Start(ctx)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, entityUsecase)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		providerHandler:    providerHandler,
		apiKeyHandler:      apiKeyHandler,
		integrationHandler: integrationHandler,
		stationHandler:     stationHandler,
		observationHandler: observationHandler,
		entityHandler:      entityHandler,
		infraHandler:       infraHandler,
		trafficHandler:     trafficHandler,
		authMiddleware:     authMiddleware,
		optionalAuth:       optionalAuth,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		scheduler.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Smart City IoT backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
