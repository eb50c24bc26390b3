package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/handlers"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	providerHandler    *handlers.ProviderHandler
	apiKeyHandler      *handlers.APIKeyHandler
	integrationHandler *handlers.IntegrationHandler
	stationHandler     *handlers.StationHandler
	observationHandler *handlers.ObservationHandler
	entityHandler      *handlers.EntityHandler
	infraHandler       *handlers.InfrastructureHandler
	trafficHandler     *handlers.TrafficHandler
	authMiddleware     gin.HandlerFunc
	optionalAuth       gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	requireOperator := middleware.RequireRole("ADMIN", "OPERATOR")
	requireAdmin := middleware.RequireRole("ADMIN")

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Profile)
		}

		// Provider registry (public read)
		providersGroup := v1.Group("/providers")
		{
			providersGroup.GET("", d.providerHandler.List)
			providersGroup.GET("/:slug", d.providerHandler.GetBySlug)
			providersGroup.POST("/:slug/test", d.optionalAuth, d.providerHandler.TestConnectivity)
		}

		// Per-user provider credentials (protected)
		apiKeys := v1.Group("/api-keys")
		apiKeys.Use(d.authMiddleware)
		{
			apiKeys.GET("", d.apiKeyHandler.ListUserKeys)
			apiKeys.PUT("/:slug", d.apiKeyHandler.SetUserKey)
			apiKeys.DELETE("/:slug", d.apiKeyHandler.DeleteUserKey)
		}

		// Provider data fetch and sync
		integrations := v1.Group("/integrations")
		{
			integrations.GET("/fetch/weather", d.optionalAuth, d.integrationHandler.FetchWeather)
			integrations.GET("/fetch/air-quality", d.optionalAuth, d.integrationHandler.FetchAirQuality)
			integrations.POST("/sync/weather", d.authMiddleware, requireOperator, d.integrationHandler.SyncWeather)
			integrations.POST("/sync/air-quality", d.authMiddleware, requireOperator, d.integrationHandler.SyncAirQuality)
		}

		// Weather stations (public read, operator write)
		stations := v1.Group("/stations")
		{
			stations.GET("", d.stationHandler.ListStations)
			stations.GET("/:id", d.stationHandler.GetStation)
			stations.POST("", d.authMiddleware, requireOperator, d.stationHandler.CreateStation)
			stations.PUT("/:id", d.authMiddleware, requireOperator, d.stationHandler.UpdateStation)
			stations.DELETE("/:id", d.authMiddleware, requireOperator, d.stationHandler.DeleteStation)
		}

		// Air quality sensors
		sensors := v1.Group("/sensors")
		{
			sensors.GET("", d.stationHandler.ListSensors)
			sensors.GET("/:id", d.stationHandler.GetSensor)
			sensors.POST("", d.authMiddleware, requireOperator, d.stationHandler.CreateSensor)
			sensors.PUT("/:id", d.authMiddleware, requireOperator, d.stationHandler.UpdateSensor)
			sensors.DELETE("/:id", d.authMiddleware, requireOperator, d.stationHandler.DeleteSensor)
		}

		// Stored observations (public read)
		observations := v1.Group("/observations")
		{
			observations.GET("/weather", d.observationHandler.ListWeather)
			observations.GET("/weather/:id", d.observationHandler.GetWeather)
			observations.GET("/air-quality", d.observationHandler.ListAirQuality)
			observations.GET("/air-quality/:id", d.observationHandler.GetAirQuality)
		}

		// Stored NGSI-LD entities and their broker sync state
		ngsiEntities := v1.Group("/entities")
		{
			ngsiEntities.GET("", d.entityHandler.List)
			ngsiEntities.GET("/:id", d.entityHandler.Get)
			ngsiEntities.DELETE("/:id", d.authMiddleware, requireOperator, d.entityHandler.Delete)
			ngsiEntities.POST("/:id/sync", d.authMiddleware, requireOperator, d.entityHandler.SyncToOrion)
		}

		// Passthrough queries against Orion-LD
		orion := v1.Group("/orion")
		{
			orion.GET("/entities", d.entityHandler.QueryOrion)
			orion.GET("/entities/:entityId", d.entityHandler.GetFromOrion)
			orion.GET("/temporal", d.entityHandler.QueryTemporal)
		}

		// JSON-LD context document (public)
		v1.GET("/context", d.entityHandler.ContextDocument)

		// City infrastructure assets (public read, operator write)
		infra := v1.Group("/infrastructure")
		{
			water := infra.Group("/water-supply")
			{
				water.GET("", d.infraHandler.ListWaterSupplyPoints)
				water.GET("/:id", d.infraHandler.GetWaterSupplyPoint)
				water.POST("", d.authMiddleware, requireOperator, d.infraHandler.CreateWaterSupplyPoint)
				water.PUT("/:id", d.authMiddleware, requireOperator, d.infraHandler.UpdateWaterSupplyPoint)
				water.DELETE("/:id", d.authMiddleware, requireOperator, d.infraHandler.DeleteWaterSupplyPoint)
			}

			drainage := infra.Group("/drainage")
			{
				drainage.GET("", d.infraHandler.ListDrainagePoints)
				drainage.GET("/:id", d.infraHandler.GetDrainagePoint)
				drainage.POST("", d.authMiddleware, requireOperator, d.infraHandler.CreateDrainagePoint)
				drainage.PUT("/:id", d.authMiddleware, requireOperator, d.infraHandler.UpdateDrainagePoint)
				drainage.DELETE("/:id", d.authMiddleware, requireOperator, d.infraHandler.DeleteDrainagePoint)
			}

			lights := infra.Group("/street-lights")
			{
				lights.GET("", d.infraHandler.ListStreetLights)
				lights.GET("/:id", d.infraHandler.GetStreetLight)
				lights.POST("", d.authMiddleware, requireOperator, d.infraHandler.CreateStreetLight)
				lights.PUT("/:id", d.authMiddleware, requireOperator, d.infraHandler.UpdateStreetLight)
				lights.DELETE("/:id", d.authMiddleware, requireOperator, d.infraHandler.DeleteStreetLight)
			}

			meters := infra.Group("/energy-meters")
			{
				meters.GET("", d.infraHandler.ListEnergyMeters)
				meters.GET("/:id", d.infraHandler.GetEnergyMeter)
				meters.POST("", d.authMiddleware, requireOperator, d.infraHandler.CreateEnergyMeter)
				meters.PUT("/:id", d.authMiddleware, requireOperator, d.infraHandler.UpdateEnergyMeter)
				meters.DELETE("/:id", d.authMiddleware, requireOperator, d.infraHandler.DeleteEnergyMeter)
			}

			towers := infra.Group("/telecom-towers")
			{
				towers.GET("", d.infraHandler.ListTelecomTowers)
				towers.GET("/:id", d.infraHandler.GetTelecomTower)
				towers.POST("", d.authMiddleware, requireOperator, d.infraHandler.CreateTelecomTower)
				towers.PUT("/:id", d.authMiddleware, requireOperator, d.infraHandler.UpdateTelecomTower)
				towers.DELETE("/:id", d.authMiddleware, requireOperator, d.infraHandler.DeleteTelecomTower)
			}
		}

		// Traffic data (public read, operator write)
		traffic := v1.Group("/traffic")
		{
			flows := traffic.Group("/flows")
			{
				flows.GET("", d.trafficHandler.ListFlowObservations)
				flows.GET("/:id", d.trafficHandler.GetFlowObservation)
				flows.POST("", d.authMiddleware, requireOperator, d.trafficHandler.RecordFlowObservation)
			}

			incidents := traffic.Group("/incidents")
			{
				incidents.GET("", d.trafficHandler.ListIncidents)
				incidents.GET("/:id", d.trafficHandler.GetIncident)
				incidents.POST("", d.authMiddleware, requireOperator, d.trafficHandler.CreateIncident)
				incidents.PUT("/:id", d.authMiddleware, requireOperator, d.trafficHandler.UpdateIncident)
				incidents.POST("/:id/resolve", d.authMiddleware, requireOperator, d.trafficHandler.ResolveIncident)
				incidents.DELETE("/:id", d.authMiddleware, requireOperator, d.trafficHandler.DeleteIncident)
			}

			busStations := traffic.Group("/bus-stations")
			{
				busStations.GET("", d.trafficHandler.ListBusStations)
				busStations.GET("/:id", d.trafficHandler.GetBusStation)
				busStations.POST("", d.authMiddleware, requireOperator, d.trafficHandler.CreateBusStation)
				busStations.PUT("/:id", d.authMiddleware, requireOperator, d.trafficHandler.UpdateBusStation)
				busStations.DELETE("/:id", d.authMiddleware, requireOperator, d.trafficHandler.DeleteBusStation)
			}

			parking := traffic.Group("/parking-spots")
			{
				parking.GET("", d.trafficHandler.ListParkingSpots)
				parking.GET("/:id", d.trafficHandler.GetParkingSpot)
				parking.POST("", d.authMiddleware, requireOperator, d.trafficHandler.CreateParkingSpot)
				parking.PUT("/:id", d.authMiddleware, requireOperator, d.trafficHandler.UpdateParkingSpot)
				parking.DELETE("/:id", d.authMiddleware, requireOperator, d.trafficHandler.DeleteParkingSpot)
			}
		}

		// Admin routes (provider registry and system credentials)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, requireAdmin)
		{
			admin.POST("/providers", d.providerHandler.Create)
			admin.PUT("/providers/:id", d.providerHandler.Update)
			admin.DELETE("/providers/:id", d.providerHandler.Delete)

			admin.GET("/system-keys", d.apiKeyHandler.ListSystemKeys)
			admin.PUT("/system-keys/:slug", d.apiKeyHandler.SetSystemKey)
			admin.DELETE("/system-keys/:slug", d.apiKeyHandler.DeleteSystemKey)
		}
	}
}
