package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type TrafficHandler struct {
	trafficUsecase *usecases.TrafficUsecase
}

func NewTrafficHandler(trafficUsecase *usecases.TrafficUsecase) *TrafficHandler {
	return &TrafficHandler{trafficUsecase: trafficUsecase}
}

// Flow observations

func (h *TrafficHandler) RecordFlowObservation(c *gin.Context) {
	var obs entities.TrafficFlowObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	obs.ID = uuid.Nil

	if err := h.trafficUsecase.RecordFlowObservation(c.Request.Context(), &obs); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, obs)
}

func (h *TrafficHandler) GetFlowObservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	obs, err := h.trafficUsecase.GetFlowObservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, obs)
}

func (h *TrafficHandler) ListFlowObservations(c *gin.Context) {
	p := paginationFromQuery(c)

	list, total, err := h.trafficUsecase.ListFlowObservations(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
}

// Incidents

func (h *TrafficHandler) CreateIncident(c *gin.Context) {
	var incident entities.TrafficIncident
	if err := c.ShouldBindJSON(&incident); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	incident.ID = uuid.Nil

	if err := h.trafficUsecase.SaveIncident(c.Request.Context(), &incident); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, incident)
}

func (h *TrafficHandler) UpdateIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var incident entities.TrafficIncident
	if err := c.ShouldBindJSON(&incident); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	incident.ID = id

	if err := h.trafficUsecase.SaveIncident(c.Request.Context(), &incident); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, incident)
}

func (h *TrafficHandler) GetIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	incident, err := h.trafficUsecase.GetIncident(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, incident)
}

func (h *TrafficHandler) ListIncidents(c *gin.Context) {
	incidents, err := h.trafficUsecase.ListIncidents(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, incidents)
}

func (h *TrafficHandler) ResolveIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	incident, err := h.trafficUsecase.ResolveIncident(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, incident)
}

func (h *TrafficHandler) DeleteIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.trafficUsecase.DeleteIncident(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "incident deleted"})
}

// Bus stations

func (h *TrafficHandler) CreateBusStation(c *gin.Context) {
	var station entities.BusStation
	if err := c.ShouldBindJSON(&station); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	station.ID = uuid.Nil

	if err := h.trafficUsecase.SaveBusStation(c.Request.Context(), &station); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, station)
}

func (h *TrafficHandler) UpdateBusStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var station entities.BusStation
	if err := c.ShouldBindJSON(&station); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	station.ID = id

	if err := h.trafficUsecase.SaveBusStation(c.Request.Context(), &station); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, station)
}

func (h *TrafficHandler) GetBusStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	station, err := h.trafficUsecase.GetBusStation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, station)
}

func (h *TrafficHandler) ListBusStations(c *gin.Context) {
	stations, err := h.trafficUsecase.ListBusStations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stations)
}

func (h *TrafficHandler) DeleteBusStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.trafficUsecase.DeleteBusStation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "bus station deleted"})
}

// Parking spots

func (h *TrafficHandler) CreateParkingSpot(c *gin.Context) {
	var spot entities.ParkingSpot
	if err := c.ShouldBindJSON(&spot); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	spot.ID = uuid.Nil

	if err := h.trafficUsecase.SaveParkingSpot(c.Request.Context(), &spot); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, spot)
}

func (h *TrafficHandler) UpdateParkingSpot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var spot entities.ParkingSpot
	if err := c.ShouldBindJSON(&spot); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	spot.ID = id

	if err := h.trafficUsecase.SaveParkingSpot(c.Request.Context(), &spot); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, spot)
}

func (h *TrafficHandler) GetParkingSpot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	spot, err := h.trafficUsecase.GetParkingSpot(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, spot)
}

func (h *TrafficHandler) ListParkingSpots(c *gin.Context) {
	spots, err := h.trafficUsecase.ListParkingSpots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, spots)
}

func (h *TrafficHandler) DeleteParkingSpot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.trafficUsecase.DeleteParkingSpot(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "parking spot deleted"})
}
