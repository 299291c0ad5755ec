// README: Live alert endpoints (list, dismiss).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadtrip/internal/modules/alerts"
	"roadtrip/internal/types"
)

type AlertHandler struct {
	alerts *alerts.Service
}

func NewAlertHandler(alertSvc *alerts.Service) *AlertHandler {
	return &AlertHandler{alerts: alertSvc}
}

// List handles GET /api/alerts.
func (h *AlertHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"alerts": h.alerts.List()})
}

// Dismiss handles DELETE /api/alerts/:id.
func (h *AlertHandler) Dismiss(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing alert id")
		return
	}

	if err := h.alerts.Dismiss(types.ID(id)); err != nil {
		if errors.Is(err, alerts.ErrNotFound) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
