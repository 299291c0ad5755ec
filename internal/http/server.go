// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roadtrip/internal/http/handlers"
	"roadtrip/internal/http/middleware"
	"roadtrip/internal/modules/alerts"
	"roadtrip/internal/modules/trip"
)

type ServerDeps struct {
	Trips  *trip.Service
	Alerts *alerts.Service
	// CORSOrigin is the browser frontend's origin; "*" allows any.
	CORSOrigin string
}

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(), corsMiddleware(deps.CORSOrigin))

	tripHandler := handlers.NewTripHandler(deps.Trips)
	r.POST("/api/trips/plan", tripHandler.Plan)
	r.GET("/api/trips/current", tripHandler.Current)
	r.POST("/api/trips/start", tripHandler.Start)
	r.POST("/api/trips/stop", tripHandler.Stop)

	alertHandler := handlers.NewAlertHandler(deps.Alerts)
	r.GET("/api/alerts", alertHandler.List)
	r.DELETE("/api/alerts/:id", alertHandler.Dismiss)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	return cors.New(cfg)
}
