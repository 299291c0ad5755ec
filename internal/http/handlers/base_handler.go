// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadtrip/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrMissingEndpoints):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNoPlan):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, trip.ErrPlanGeneration):
		// The upstream model failed or returned garbage; the client can retry.
		writeError(c, http.StatusBadGateway, "trip plan generation failed, please try again")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
