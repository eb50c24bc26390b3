package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

type StationHandler struct {
	stationUsecase *usecases.StationUsecase
}

func NewStationHandler(stationUsecase *usecases.StationUsecase) *StationHandler {
	return &StationHandler{stationUsecase: stationUsecase}
}

// CreateStation registers a weather station
func (h *StationHandler) CreateStation(c *gin.Context) {
	var input entities.CreateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	station, err := h.stationUsecase.CreateWeatherStation(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, station)
}

// ListStations returns weather stations
func (h *StationHandler) ListStations(c *gin.Context) {
	stations, err := h.stationUsecase.ListWeatherStations(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stations)
}

// GetStation returns a weather station by ID
func (h *StationHandler) GetStation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid station id")
		return
	}

	station, err := h.stationUsecase.GetWeatherStation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, station)
}

// UpdateStation updates a weather station and republishes its entity
func (h *StationHandler) UpdateStation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid station id")
		return
	}

	var input entities.CreateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	station, err := h.stationUsecase.UpdateWeatherStation(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, station)
}

// DeleteStation removes a weather station
func (h *StationHandler) DeleteStation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid station id")
		return
	}

	if err := h.stationUsecase.DeleteWeatherStation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Station deleted"})
}

// CreateSensor registers an air quality sensor
func (h *StationHandler) CreateSensor(c *gin.Context) {
	var input entities.CreateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sensor, err := h.stationUsecase.CreateAirQualitySensor(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sensor)
}

// ListSensors returns air quality sensors
func (h *StationHandler) ListSensors(c *gin.Context) {
	sensors, err := h.stationUsecase.ListAirQualitySensors(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sensors)
}

// GetSensor returns an air quality sensor by ID
func (h *StationHandler) GetSensor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid sensor id")
		return
	}

	sensor, err := h.stationUsecase.GetAirQualitySensor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sensor)
}

// UpdateSensor updates an air quality sensor and republishes its entity
func (h *StationHandler) UpdateSensor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid sensor id")
		return
	}

	var input entities.CreateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sensor, err := h.stationUsecase.UpdateAirQualitySensor(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sensor)
}

// DeleteSensor removes an air quality sensor
func (h *StationHandler) DeleteSensor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid sensor id")
		return
	}

	if err := h.stationUsecase.DeleteAirQualitySensor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Sensor deleted"})
}
