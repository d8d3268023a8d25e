package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/services"
)

var notifyAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) SendBookingEmails(c *gin.Context) {
	var payload domain.NotificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation: invalid JSON body"})
		return
	}

	res, err := h.svc.Send(c.Request.Context(), payload)

	var verr *domain.ValidationError
	var sendErr *services.SendError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"adminEmail":    res.AdminEmail,
			"customerEmail": res.CustomerEmail,
		})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verr.Error(),
			"fields":  verr.Fields,
		})
	case errors.As(err, &sendErr):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":       false,
			"error":         err.Error(),
			"adminEmail":    sendErr.Result.AdminEmail,
			"customerEmail": sendErr.Result.CustomerEmail,
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

// Preflight answers OPTIONS requests that arrive without an Origin header.
func (h *NotificationHandler) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", strings.Join(notifyAllowHeaders, ", "))
	c.Status(http.StatusNoContent)
}
