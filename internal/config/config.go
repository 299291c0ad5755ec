// README: Config loader with env defaults for HTTP, providers, Redis, and alert polling.
package config

import (
	"os"
	"strconv"
)

type AlertConfig struct {
	PollSeconds int
	Capacity    int
}

type Config struct {
	HTTP struct {
		Addr       string
		CORSOrigin string
	}
	AI struct {
		GeminiKey string
	}
	Geo struct {
		Provider     string // "nominatim" or "google"
		NominatimURL string
		MapsKey      string
	}
	Route struct {
		Provider string // "osrm" or "google"
		OSRMURL  string
	}
	Redis struct {
		Addr string // empty disables the geocode cache
	}
	Alerts AlertConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ROADTRIP_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigin = envOrDefault("ROADTRIP_CORS_ORIGIN", "*")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.Geo.Provider = envOrDefault("ROADTRIP_GEOCODER", "nominatim")
	cfg.Geo.NominatimURL = envOrDefault("ROADTRIP_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Route.Provider = envOrDefault("ROADTRIP_ROUTER", "osrm")
	cfg.Route.OSRMURL = envOrDefault("ROADTRIP_OSRM_URL", "https://router.project-osrm.org")
	cfg.Redis.Addr = envOrDefault("ROADTRIP_REDIS_ADDR", "")
	cfg.Alerts.PollSeconds = envOrDefaultInt("ROADTRIP_ALERT_POLL_SECONDS", 30)
	cfg.Alerts.Capacity = envOrDefaultInt("ROADTRIP_ALERT_CAPACITY", 5)

	// The Google key is only mandatory when a Google-backed provider is selected.
	if cfg.Geo.Provider == "google" || cfg.Route.Provider == "google" {
		cfg.Geo.MapsKey = envOrError("GOOGLE_MAPS_API_KEY")
	} else {
		cfg.Geo.MapsKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
