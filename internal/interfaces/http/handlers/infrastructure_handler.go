package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

// InfrastructureHandler exposes CRUD endpoints for the city utility assets:
// water supply points, drainage points, street lights, energy meters and
// telecom towers. Each save publishes the matching NGSI-LD entity.
type InfrastructureHandler struct {
	infraUsecase *usecases.InfrastructureUsecase
}

func NewInfrastructureHandler(infraUsecase *usecases.InfrastructureUsecase) *InfrastructureHandler {
	return &InfrastructureHandler{infraUsecase: infraUsecase}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// Water supply points

func (h *InfrastructureHandler) CreateWaterSupplyPoint(c *gin.Context) {
	var point entities.WaterSupplyPoint
	if err := c.ShouldBindJSON(&point); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	point.ID = uuid.Nil

	if err := h.infraUsecase.SaveWaterSupplyPoint(c.Request.Context(), &point); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, point)
}

func (h *InfrastructureHandler) UpdateWaterSupplyPoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var point entities.WaterSupplyPoint
	if err := c.ShouldBindJSON(&point); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	point.ID = id

	if err := h.infraUsecase.SaveWaterSupplyPoint(c.Request.Context(), &point); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, point)
}

func (h *InfrastructureHandler) GetWaterSupplyPoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	point, err := h.infraUsecase.GetWaterSupplyPoint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, point)
}

func (h *InfrastructureHandler) ListWaterSupplyPoints(c *gin.Context) {
	points, err := h.infraUsecase.ListWaterSupplyPoints(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, points)
}

func (h *InfrastructureHandler) DeleteWaterSupplyPoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infraUsecase.DeleteWaterSupplyPoint(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "water supply point deleted"})
}

// Drainage points

func (h *InfrastructureHandler) CreateDrainagePoint(c *gin.Context) {
	var point entities.DrainagePoint
	if err := c.ShouldBindJSON(&point); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	point.ID = uuid.Nil

	if err := h.infraUsecase.SaveDrainagePoint(c.Request.Context(), &point); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, point)
}

func (h *InfrastructureHandler) UpdateDrainagePoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var point entities.DrainagePoint
	if err := c.ShouldBindJSON(&point); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	point.ID = id

	if err := h.infraUsecase.SaveDrainagePoint(c.Request.Context(), &point); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, point)
}

func (h *InfrastructureHandler) GetDrainagePoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	point, err := h.infraUsecase.GetDrainagePoint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, point)
}

func (h *InfrastructureHandler) ListDrainagePoints(c *gin.Context) {
	points, err := h.infraUsecase.ListDrainagePoints(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, points)
}

func (h *InfrastructureHandler) DeleteDrainagePoint(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infraUsecase.DeleteDrainagePoint(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "drainage point deleted"})
}

// Street lights

func (h *InfrastructureHandler) CreateStreetLight(c *gin.Context) {
	var light entities.StreetLight
	if err := c.ShouldBindJSON(&light); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	light.ID = uuid.Nil

	if err := h.infraUsecase.SaveStreetLight(c.Request.Context(), &light); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, light)
}

func (h *InfrastructureHandler) UpdateStreetLight(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var light entities.StreetLight
	if err := c.ShouldBindJSON(&light); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	light.ID = id

	if err := h.infraUsecase.SaveStreetLight(c.Request.Context(), &light); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, light)
}

func (h *InfrastructureHandler) GetStreetLight(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	light, err := h.infraUsecase.GetStreetLight(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, light)
}

func (h *InfrastructureHandler) ListStreetLights(c *gin.Context) {
	lights, err := h.infraUsecase.ListStreetLights(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, lights)
}

func (h *InfrastructureHandler) DeleteStreetLight(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infraUsecase.DeleteStreetLight(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "street light deleted"})
}

// Energy meters

func (h *InfrastructureHandler) CreateEnergyMeter(c *gin.Context) {
	var meter entities.EnergyMeter
	if err := c.ShouldBindJSON(&meter); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	meter.ID = uuid.Nil

	if err := h.infraUsecase.SaveEnergyMeter(c.Request.Context(), &meter); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, meter)
}

func (h *InfrastructureHandler) UpdateEnergyMeter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var meter entities.EnergyMeter
	if err := c.ShouldBindJSON(&meter); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	meter.ID = id

	if err := h.infraUsecase.SaveEnergyMeter(c.Request.Context(), &meter); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, meter)
}

func (h *InfrastructureHandler) GetEnergyMeter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	meter, err := h.infraUsecase.GetEnergyMeter(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, meter)
}

func (h *InfrastructureHandler) ListEnergyMeters(c *gin.Context) {
	meters, err := h.infraUsecase.ListEnergyMeters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, meters)
}

func (h *InfrastructureHandler) DeleteEnergyMeter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infraUsecase.DeleteEnergyMeter(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "energy meter deleted"})
}

// Telecom towers

func (h *InfrastructureHandler) CreateTelecomTower(c *gin.Context) {
	var tower entities.TelecomTower
	if err := c.ShouldBindJSON(&tower); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tower.ID = uuid.Nil

	if err := h.infraUsecase.SaveTelecomTower(c.Request.Context(), &tower); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tower)
}

func (h *InfrastructureHandler) UpdateTelecomTower(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var tower entities.TelecomTower
	if err := c.ShouldBindJSON(&tower); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tower.ID = id

	if err := h.infraUsecase.SaveTelecomTower(c.Request.Context(), &tower); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tower)
}

func (h *InfrastructureHandler) GetTelecomTower(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tower, err := h.infraUsecase.GetTelecomTower(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tower)
}

func (h *InfrastructureHandler) ListTelecomTowers(c *gin.Context) {
	towers, err := h.infraUsecase.ListTelecomTowers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, towers)
}

func (h *InfrastructureHandler) DeleteTelecomTower(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infraUsecase.DeleteTelecomTower(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "telecom tower deleted"})
}
