package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

type APIKeyHandler struct {
	apiKeyUsecase *usecases.APIKeyUsecase
}

func NewAPIKeyHandler(apiKeyUsecase *usecases.APIKeyUsecase) *APIKeyHandler {
	return &APIKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// SetUserKey stores the caller's key for a provider. The response carries
// the masked key only.
func (h *APIKeyHandler) SetUserKey(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input entities.SetUserAPIKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key, err := h.apiKeyUsecase.SetUserKey(c.Request.Context(), userID, c.Param("slug"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, key)
}

// ListUserKeys lists the caller's stored keys
func (h *APIKeyHandler) ListUserKeys(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	keys, err := h.apiKeyUsecase.ListUserKeys(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, keys)
}

// DeleteUserKey removes the caller's key for a provider
func (h *APIKeyHandler) DeleteUserKey(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.apiKeyUsecase.DeleteUserKey(c.Request.Context(), userID, c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Key deleted"})
}

// SetSystemKey stores the platform-wide key for a provider. Admin only.
func (h *APIKeyHandler) SetSystemKey(c *gin.Context) {
	var input entities.SetSystemAPIKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key, err := h.apiKeyUsecase.SetSystemKey(c.Request.Context(), c.Param("slug"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, key)
}

// ListSystemKeys lists system keys. Admin only.
func (h *APIKeyHandler) ListSystemKeys(c *gin.Context) {
	keys, err := h.apiKeyUsecase.ListSystemKeys(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, keys)
}

// DeleteSystemKey removes the system key for a provider. Admin only.
func (h *APIKeyHandler) DeleteSystemKey(c *gin.Context) {
	if err := h.apiKeyUsecase.DeleteSystemKey(c.Request.Context(), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "System key deleted"})
}
