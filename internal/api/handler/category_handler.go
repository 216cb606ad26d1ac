package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type CategoryHandler struct {
	catalogService *service.CatalogService
}

func NewCategoryHandler(cs *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: cs}
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var dto domain.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, categories, len(categories))
}

// GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.catalogService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category ID")
		return
	}

	var dto domain.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
