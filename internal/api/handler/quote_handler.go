package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srivastan1999/elfsod-2-sub000/internal/api/middleware"
	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(qs *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: qs}
}

// currentUser pulls the authenticated caller out of the gin context set by
// the auth middleware.
func currentUser(c *gin.Context) (int, string, bool) {
	idStr, _ := c.Get(middleware.UserIDKey)
	roleVal, _ := c.Get(middleware.UserRoleKey)

	idRaw, ok := idStr.(string)
	if !ok {
		return 0, "", false
	}
	id, err := strconv.Atoi(idRaw)
	if err != nil {
		return 0, "", false
	}
	role, _ := roleVal.(string)
	return id, role, true
}

// POST /quote-requests
func (h *QuoteHandler) Submit(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var dto domain.SubmitQuoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteService.Submit(c.Request.Context(), userID, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, quote)
}

// GET /quote-requests
// Admins see every request, everyone else only their own.
func (h *QuoteHandler) List(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var (
		quotes []domain.QuoteRequest
		err    error
	)
	if role == "admin" {
		quotes, err = h.quoteService.ListAll(c.Request.Context())
	} else {
		quotes, err = h.quoteService.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, quotes, len(quotes))
}

// GET /quote-requests/:id
func (h *QuoteHandler) GetByID(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid quote request ID")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if role != "admin" && quote.UserID != userID {
		respondServiceError(c, repository.ErrNotFound)
		return
	}
	respondData(c, http.StatusOK, quote)
}

// POST /quote-requests/items/:item_id/review
func (h *QuoteHandler) ReviewItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid quote item ID")
		return
	}

	var dto domain.ReviewQuoteItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteService.ReviewItem(c.Request.Context(), itemID, domain.ApprovalStatus(dto.Decision))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, quote)
}

// DELETE /quote-requests/items/:item_id
func (h *QuoteHandler) DeleteItem(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid quote item ID")
		return
	}

	if err := h.quoteService.DeleteItem(c.Request.Context(), itemID, userID, role == "admin"); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
