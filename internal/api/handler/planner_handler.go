package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type PlannerHandler struct {
	plannerService *service.PlannerService
}

func NewPlannerHandler(ps *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: ps}
}

// POST /ai-planner/suggest
func (h *PlannerHandler) Suggest(c *gin.Context) {
	var brief domain.CampaignBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, method, err := h.plannerService.Suggest(c.Request.Context(), brief)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
		"method":      method,
	})
}
