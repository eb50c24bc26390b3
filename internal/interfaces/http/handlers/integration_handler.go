package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

type IntegrationHandler struct {
	syncUsecase *usecases.SyncUsecase
}

func NewIntegrationHandler(syncUsecase *usecases.SyncUsecase) *IntegrationHandler {
	return &IntegrationHandler{syncUsecase: syncUsecase}
}

// SyncWeather triggers a weather sync over all active stations
func (h *IntegrationHandler) SyncWeather(c *gin.Context) {
	report, err := h.syncUsecase.SyncWeather(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	syncReport(c, report)
}

// SyncAirQuality triggers an air quality sync over all active sensors
func (h *IntegrationHandler) SyncAirQuality(c *gin.Context) {
	report, err := h.syncUsecase.SyncAirQuality(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	syncReport(c, report)
}

// syncReport distinguishes "every fetch failed" from a partial or empty pass.
func syncReport(c *gin.Context, report entities.SyncReport) {
	if report.Attempted > 0 && report.Synced == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "no data found",
			"report":  report,
		})
		return
	}
	response.Success(c, http.StatusOK, report)
}

// FetchWeather fetches current weather for an arbitrary coordinate pair
func (h *IntegrationHandler) FetchWeather(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	obs, err := h.syncUsecase.SyncLocationWeather(c.Request.Context(), lat, lon, c.Query("name"), middleware.GetUserIDPtr(c))
	if err != nil {
		fetchError(c, err)
		return
	}

	response.Success(c, http.StatusOK, obs)
}

// FetchAirQuality fetches the latest air quality near an arbitrary
// coordinate pair
func (h *IntegrationHandler) FetchAirQuality(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	obs, err := h.syncUsecase.SyncLocationAirQuality(c.Request.Context(), lat, lon, c.Query("name"), middleware.GetUserIDPtr(c))
	if err != nil {
		fetchError(c, err)
		return
	}

	response.Success(c, http.StatusOK, obs)
}

func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "lat is required and must be a number")
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "lon is required and must be a number")
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(c, "coordinate out of range")
		return 0, 0, false
	}
	return lat, lon, true
}

// fetchError maps upstream fetch failures onto client-facing statuses.
func fetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrNoDataFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "no data found"})
	case errors.Is(err, domainerrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"code": http.StatusTooManyRequests, "message": "provider rate limit exceeded"})
	case errors.Is(err, domainerrors.ErrNoCredential):
		c.JSON(http.StatusBadGateway, gin.H{"code": http.StatusBadGateway, "message": "no credential available for provider"})
	case errors.Is(err, domainerrors.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"code": http.StatusBadGateway, "message": "external provider unavailable"})
	default:
		response.Error(c, err)
	}
}
