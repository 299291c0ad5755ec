// README: Trip planning endpoints (plan, current, start, stop).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roadtrip/internal/modules/trip"
)

// planTimeout bounds the whole pipeline: one generation plus a short chain
// of sequential geocode lookups and one routing call.
const planTimeout = 90 * time.Second

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

type planReq struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Stops       []string `json:"stops"`
}

// Plan handles POST /api/trips/plan.
func (h *TripHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), planTimeout)
	defer cancel()

	res, err := h.trips.Plan(ctx, trip.PlanCommand{
		Origin:      req.Origin,
		Destination: req.Destination,
		Stops:       req.Stops,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}

	writeJSON(c, http.StatusCreated, res)
}

// Current handles GET /api/trips/current.
func (h *TripHandler) Current(c *gin.Context) {
	snap := h.trips.Snapshot()
	writeJSON(c, http.StatusOK, snap)
}

// Start handles POST /api/trips/start.
func (h *TripHandler) Start(c *gin.Context) {
	if err := h.trips.Start(); err != nil {
		writeTripError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stop handles POST /api/trips/stop.
func (h *TripHandler) Stop(c *gin.Context) {
	h.trips.Stop()
	c.Status(http.StatusNoContent)
}
