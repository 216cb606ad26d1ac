package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type AdSpaceHandler struct {
	adSpaceService     *service.AdSpaceService
	categorizerService *service.CategorizerService
}

func NewAdSpaceHandler(as *service.AdSpaceService, cs *service.CategorizerService) *AdSpaceHandler {
	return &AdSpaceHandler{adSpaceService: as, categorizerService: cs}
}

// GET /ad-spaces
func (h *AdSpaceHandler) List(c *gin.Context) {
	query, err := parseAdSpaceQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	spaces, _, err := h.adSpaceService.Find(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, spaces, len(spaces))
}

// GET /ad-spaces/filter
// Extended variant: supports category-ID lists and parent-category expansion
// and echoes the applied filter set.
func (h *AdSpaceHandler) Filter(c *gin.Context) {
	query, err := parseAdSpaceQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	spaces, applied, err := h.adSpaceService.Find(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    spaces,
		"count":   len(spaces),
		"filters": applied,
	})
}

// GET /ad-spaces/:id
func (h *AdSpaceHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ad space ID")
		return
	}

	space, err := h.adSpaceService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, space)
}

// POST /ad-spaces
func (h *AdSpaceHandler) Create(c *gin.Context) {
	var dto domain.AdSpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	space, err := h.adSpaceService.Create(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, space)
}

// PUT /ad-spaces/:id
func (h *AdSpaceHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ad space ID")
		return
	}

	var dto domain.AdSpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	space, err := h.adSpaceService.Update(c.Request.Context(), id, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, space)
}

// DELETE /ad-spaces/:id
func (h *AdSpaceHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ad space ID")
		return
	}

	if err := h.adSpaceService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// GET /ad-spaces/:id/coverage?additionalKm=3
func (h *AdSpaceHandler) Coverage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ad space ID")
		return
	}

	additionalKm := 0.0
	if raw := c.Query("additionalKm"); raw != "" {
		additionalKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "additionalKm must be a number")
			return
		}
	}

	estimate, err := h.adSpaceService.Coverage(c.Request.Context(), id, additionalKm)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, estimate)
}

// POST /ad-spaces/assign-categories?onlyUnmatched=true
func (h *AdSpaceHandler) AssignCategories(c *gin.Context) {
	onlyUnmatched := c.Query("onlyUnmatched") == "true"

	summary, err := h.categorizerService.AssignCategories(c.Request.Context(), onlyUnmatched)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

func parseAdSpaceQuery(c *gin.Context) (service.AdSpaceQuery, error) {
	query := service.AdSpaceQuery{
		City:               c.Query("city"),
		ParentCategoryName: c.Query("parentCategory"),
		CategoryName:       c.Query("category"),
		DisplayType:        c.Query("displayType"),
		SearchQuery:        c.Query("search"),
		AvailabilityStatus: c.Query("availability"),
	}

	var err error
	if query.CategoryIDs, err = parseIntList(c.Query("categoryIds")); err != nil {
		return query, err
	}
	if query.PublisherIDs, err = parseIntList(c.Query("publisherIds")); err != nil {
		return query, err
	}
	if query.MinPrice, err = parseOptionalFloat(c.Query("minPrice"), "minPrice"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = parseOptionalFloat(c.Query("maxPrice"), "maxPrice"); err != nil {
		return query, err
	}
	if query.MinFootfall, err = parseOptionalInt(c.Query("minFootfall"), "minFootfall"); err != nil {
		return query, err
	}
	if query.MaxFootfall, err = parseOptionalInt(c.Query("maxFootfall"), "maxFootfall"); err != nil {
		return query, err
	}
	if raw := c.Query("limit"); raw != "" {
		query.Limit, err = strconv.Atoi(raw)
		if err != nil {
			return query, errInvalidQueryParam("limit")
		}
	}
	return query, nil
}

func parseIntList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errInvalidQueryParam("categoryIds/publisherIds")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errInvalidQueryParam(name)
	}
	return &value, nil
}

func parseOptionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errInvalidQueryParam(name)
	}
	return &value, nil
}

type queryParamError string

func (e queryParamError) Error() string { return "invalid query parameter: " + string(e) }

func errInvalidQueryParam(name string) error { return queryParamError(name) }
