package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type LocationHandler struct {
	catalogService *service.CatalogService
}

func NewLocationHandler(cs *service.CatalogService) *LocationHandler {
	return &LocationHandler{catalogService: cs}
}

// POST /locations
func (h *LocationHandler) Create(c *gin.Context) {
	var dto domain.LocationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.catalogService.CreateLocation(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, location)
}

// GET /locations
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.catalogService.GetAllLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, locations, len(locations))
}

// GET /locations/:id
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	location, err := h.catalogService.GetLocationByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, location)
}

// PUT /locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	var dto domain.LocationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.catalogService.UpdateLocation(c.Request.Context(), id, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, location)
}

// DELETE /locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	if err := h.catalogService.DeleteLocation(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
