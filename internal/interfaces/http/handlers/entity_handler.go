package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/response"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type EntityHandler struct {
	entityUsecase *usecases.EntityUsecase
}

func NewEntityHandler(entityUsecase *usecases.EntityUsecase) *EntityHandler {
	return &EntityHandler{entityUsecase: entityUsecase}
}

// List returns stored entity documents and their sync state
func (h *EntityHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)

	list, total, err := h.entityUsecase.List(c.Request.Context(), c.Query("type"), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, list, utils.CalculateMeta(total, p.Page, p.Limit))
}

// Get returns a stored entity by its database ID
func (h *EntityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entity id")
		return
	}

	entity, err := h.entityUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// Delete removes a stored entity, and its broker copy when synced
func (h *EntityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entity id")
		return
	}

	if err := h.entityUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Entity deleted"})
}

// SyncToOrion pushes a stored entity document to the context broker
func (h *EntityHandler) SyncToOrion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entity id")
		return
	}

	entity, err := h.entityUsecase.SyncToOrion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// QueryOrion runs a passthrough query against the context broker
func (h *EntityHandler) QueryOrion(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, err := h.entityUsecase.QueryOrion(c.Request.Context(), broker.QueryParams{
		Type:        c.Query("type"),
		Query:       c.Query("q"),
		GeoRel:      c.Query("georel"),
		Geometry:    c.Query("geometry"),
		Coordinates: c.Query("coordinates"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// GetFromOrion fetches a single entity from the context broker
func (h *EntityHandler) GetFromOrion(c *gin.Context) {
	doc, err := h.entityUsecase.GetFromOrion(c.Request.Context(), c.Param("entityId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// QueryTemporal runs a temporal query against the context broker
func (h *EntityHandler) QueryTemporal(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	params := broker.TemporalParams{
		Type:    c.Query("type"),
		TimeRel: c.DefaultQuery("timerel", "after"),
		Limit:   limit,
	}
	if t, err := time.Parse(time.RFC3339, c.Query("timeAt")); err == nil {
		params.TimeAt = t
	}
	if t, err := time.Parse(time.RFC3339, c.Query("endTimeAt")); err == nil {
		params.EndTimeAt = t
	}

	docs, err := h.entityUsecase.QueryTemporal(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// ContextDocument serves the JSON-LD @context document referenced by
// published entities
func (h *EntityHandler) ContextDocument(c *gin.Context) {
	c.Header("Content-Type", "application/ld+json")
	c.JSON(http.StatusOK, ngsild.ContextDocument())
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}
