package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bs *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var dto domain.BookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, booking)
}

// GET /bookings?adSpaceId=&status=
// Admins can list across users; everyone else is scoped to their own.
func (h *BookingHandler) List(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var filter domain.BookingFilterDTO
	if role == "admin" {
		if raw := c.Query("userId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid userId")
				return
			}
			filter.UserID = &id
		}
	} else {
		filter.UserID = &userID
	}
	if raw := c.Query("adSpaceId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid adSpaceId")
			return
		}
		filter.AdSpaceID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.Status = &status
	}

	bookings, err := h.bookingService.Find(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, bookings, len(bookings))
}

// GET /bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if role != "admin" && booking.UserID != userID {
		respondServiceError(c, repository.ErrNotFound)
		return
	}
	respondData(c, http.StatusOK, booking)
}

// PUT /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid booking ID")
		return
	}

	var dto domain.BookingStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, domain.BookingStatus(dto.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, booking)
}

// PUT /bookings/:id/payment-status
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid booking ID")
		return
	}

	var dto domain.PaymentStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingService.UpdatePaymentStatus(c.Request.Context(), id, domain.PaymentStatus(dto.PaymentStatus))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, booking)
}
