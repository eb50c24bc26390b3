package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

type ProviderHandler struct {
	providerUsecase *usecases.ProviderUsecase
}

func NewProviderHandler(providerUsecase *usecases.ProviderUsecase) *ProviderHandler {
	return &ProviderHandler{providerUsecase: providerUsecase}
}

// Create registers a new external provider
func (h *ProviderHandler) Create(c *gin.Context) {
	var input entities.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	provider, err := h.providerUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, provider)
}

// List returns registered providers, optionally filtered
func (h *ProviderHandler) List(c *gin.Context) {
	category := c.Query("category")
	activeOnly := c.Query("active") == "true"

	providers, err := h.providerUsecase.List(c.Request.Context(), category, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, providers)
}

// GetBySlug returns a single provider
func (h *ProviderHandler) GetBySlug(c *gin.Context) {
	provider, err := h.providerUsecase.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, provider)
}

// Update applies a partial provider update
func (h *ProviderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	var input entities.UpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	provider, err := h.providerUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, provider)
}

// Delete removes a provider from the registry
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	if err := h.providerUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Provider deleted"})
}

// TestConnectivity probes the provider with the caller's resolved credential
func (h *ProviderHandler) TestConnectivity(c *gin.Context) {
	result, err := h.providerUsecase.TestConnectivity(c.Request.Context(), c.Param("slug"), middleware.GetUserIDPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
