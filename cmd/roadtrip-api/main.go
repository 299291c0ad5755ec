// README: Entry point; loads config, wires providers and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"roadtrip/internal/ai"
	"roadtrip/internal/config"
	"roadtrip/internal/geo"
	httptransport "roadtrip/internal/http"
	"roadtrip/internal/infra"
	"roadtrip/internal/modules/alerts"
	"roadtrip/internal/modules/trip"
	"roadtrip/internal/route"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	geocoder, err := buildGeocoder(cfg)
	if err != nil {
		log.Fatalf("geocoder init: %v", err)
	}

	router, err := buildRouter(cfg)
	if err != nil {
		log.Fatalf("router init: %v", err)
	}

	alertSvc := alerts.NewService(provider, cfg.Alerts)
	tripSvc := trip.NewService(provider, geocoder, router, alertSvc)

	handler := httptransport.NewRouter(httptransport.ServerDeps{
		Trips:      tripSvc,
		Alerts:     alertSvc,
		CORSOrigin: cfg.HTTP.CORSOrigin,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		alertSvc.Deactivate()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func buildGeocoder(cfg config.Config) (geo.Geocoder, error) {
	var geocoder geo.Geocoder
	switch cfg.Geo.Provider {
	case "google":
		g, err := geo.NewGoogleGeocoder(cfg.Geo.MapsKey)
		if err != nil {
			return nil, err
		}
		geocoder = g
	default:
		geocoder = geo.NewNominatimClient(cfg.Geo.NominatimURL)
	}

	if cfg.Redis.Addr != "" {
		geocoder = geo.NewCachedGeocoder(geocoder, infra.NewRedis(cfg.Redis.Addr))
	}
	return geocoder, nil
}

func buildRouter(cfg config.Config) (route.Router, error) {
	switch cfg.Route.Provider {
	case "google":
		return route.NewGoogleRouter(cfg.Geo.MapsKey)
	default:
		return route.NewOSRMClient(cfg.Route.OSRMURL), nil
	}
}
