package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type PublisherHandler struct {
	catalogService *service.CatalogService
}

func NewPublisherHandler(cs *service.CatalogService) *PublisherHandler {
	return &PublisherHandler{catalogService: cs}
}

// POST /publishers
func (h *PublisherHandler) Create(c *gin.Context) {
	var dto domain.PublisherDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	publisher, err := h.catalogService.CreatePublisher(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, publisher)
}

// GET /publishers
func (h *PublisherHandler) List(c *gin.Context) {
	publishers, err := h.catalogService.GetAllPublishers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, publishers, len(publishers))
}

// GET /publishers/:id
func (h *PublisherHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid publisher ID")
		return
	}

	publisher, err := h.catalogService.GetPublisherByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, publisher)
}

// PUT /publishers/:id
func (h *PublisherHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid publisher ID")
		return
	}

	var dto domain.PublisherDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	publisher, err := h.catalogService.UpdatePublisher(c.Request.Context(), id, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, publisher)
}

// DELETE /publishers/:id
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid publisher ID")
		return
	}

	if err := h.catalogService.DeletePublisher(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
