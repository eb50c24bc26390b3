package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, entityUsecase *usecases.EntityUsecase) {
	r.GET("/health", func(c *gin.Context) {
		brokerStatus := "down"
		if entityUsecase.BrokerHealthy(c.Request.Context()) {
			brokerStatus = "up"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"broker": brokerStatus,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
