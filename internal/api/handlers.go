package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alert-dashboard/internal/alerts"
	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/models"
)

type Handler struct {
	svc    *alerts.Service
	logger *logging.Logger
}

func NewHandler(svc *alerts.Service, logger *logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) GetAlerts(c *gin.Context) {
	list, err := h.svc.ListAlerts(c.Request.Context())
	if err != nil {
		h.log(c).Errorf("Failed to get alerts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts"})
		return
	}

	h.log(c).Infof("Retrieved %d alerts", len(list))
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetAlertByID(c *gin.Context) {
	id, ok := h.alertID(c)
	if !ok {
		return
	}

	alert, err := h.svc.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get alert %d: %v", id, err)
		return
	}

	h.log(c).Infof("Retrieved alert %d", id)
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) GetAlertsByStatus(c *gin.Context) {
	status, ok := models.ParseStatus(c.Param("status"))
	if !ok {
		h.log(c).Errorf("Invalid status %q", c.Param("status"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	list, err := h.svc.ListAlertsByStatus(c.Request.Context(), status)
	if err != nil {
		h.writeError(c, err, "Failed to get alerts with status %s: %v", status, err)
		return
	}

	h.log(c).Infof("Retrieved %d alerts with status %s", len(list), status)
	c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateAlertStatus(c *gin.Context) {
	id, ok := h.alertID(c)
	if !ok {
		return
	}

	var q statusUpdateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.log(c).Errorf("Invalid status update for alert %d: %v", id, err)
		badRequest(c, err)
		return
	}

	alert, err := h.svc.UpdateAlertStatus(c.Request.Context(), id, q.toUpdate())
	if err != nil {
		h.writeError(c, err, "Failed to update alert %d: %v", id, err)
		return
	}

	h.log(c).Infof("Updated alert %d to %s", id, alert.Status)
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) alertID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.log(c).Errorf("Invalid alert id %s: %v", raw, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert id"})
		return 0, false
	}
	return id, true
}

// writeError logs and maps service errors onto status codes.
func (h *Handler) writeError(c *gin.Context, err error, format string, args ...interface{}) {
	h.log(c).Errorf(format, args...)
	switch {
	case errors.Is(err, alerts.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
	case errors.Is(err, alerts.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
