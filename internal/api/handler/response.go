package handler

import (
	"database/sql/driver"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

// All responses share one envelope: {success, data|error, details?, hint?}.
// Connectivity failures additionally carry fallback:true, telling the
// frontend to retry against the store directly instead of this API.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": count})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError maps service and repository errors onto the envelope's
// error taxonomy.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, repository.ErrDuplicateEntry),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrItemPending),
		errors.Is(err, service.ErrInvalidTransition):
		respondError(c, http.StatusConflict, err.Error())

	default:
		respondStoreError(c, err)
	}
}

func respondStoreError(c *gin.Context, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   pqErr.Message,
			"details": pqErr.Detail,
			"hint":    pqErr.Hint,
		})
		return
	}

	if isConnectivityError(err) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":  false,
			"error":    err.Error(),
			"fallback": true,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

func isConnectivityError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
