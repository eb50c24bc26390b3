package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type ObservationHandler struct {
	observationUsecase *usecases.ObservationUsecase
}

func NewObservationHandler(observationUsecase *usecases.ObservationUsecase) *ObservationHandler {
	return &ObservationHandler{observationUsecase: observationUsecase}
}

// ListWeather returns recent weather observations
func (h *ObservationHandler) ListWeather(c *gin.Context) {
	p := paginationFromQuery(c)

	if stationParam := c.Query("stationId"); stationParam != "" {
		stationID, err := uuid.Parse(stationParam)
		if err != nil {
			response.BadRequest(c, "invalid station id")
			return
		}
		list, total, err := h.observationUsecase.ListWeatherByStation(c.Request.Context(), stationID, p)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
		return
	}

	list, total, err := h.observationUsecase.ListRecentWeather(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetWeather returns a single weather observation
func (h *ObservationHandler) GetWeather(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid observation id")
		return
	}

	obs, err := h.observationUsecase.GetWeatherObservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, obs)
}

// ListAirQuality returns recent air quality observations
func (h *ObservationHandler) ListAirQuality(c *gin.Context) {
	p := paginationFromQuery(c)

	if sensorParam := c.Query("sensorId"); sensorParam != "" {
		sensorID, err := uuid.Parse(sensorParam)
		if err != nil {
			response.BadRequest(c, "invalid sensor id")
			return
		}
		list, total, err := h.observationUsecase.ListAirQualityBySensor(c.Request.Context(), sensorID, p)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
		return
	}

	list, total, err := h.observationUsecase.ListRecentAirQuality(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetAirQuality returns a single air quality observation
func (h *ObservationHandler) GetAirQuality(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid observation id")
		return
	}

	obs, err := h.observationUsecase.GetAirQualityObservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, obs)
}
