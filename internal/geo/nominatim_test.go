package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimGeocode_BestMatch(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("unexpected query params: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"40.7127281","lon":"-74.0060152","display_name":"New York, United States"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	p, err := c.Geocode(context.Background(), "New York, NY")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}

	if gotQuery != "New York, NY" {
		t.Errorf("query sent = %q, want %q", gotQuery, "New York, NY")
	}
	if gotUA == "" {
		t.Error("request has no User-Agent; Nominatim policy requires one")
	}
	if p.Lat != 40.7127281 || p.Lon != -74.0060152 {
		t.Errorf("coordinates = (%f, %f), want (40.7127281, -74.0060152)", p.Lat, p.Lon)
	}
	if p.DisplayName != "New York, United States" {
		t.Errorf("display name = %q", p.DisplayName)
	}
}

func TestNominatimGeocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	_, err := c.Geocode(context.Background(), "Nowhereville XYZ")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestNominatimGeocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	_, err := c.Geocode(context.Background(), "New York, NY")
	if err == nil {
		t.Fatal("expected error on 503")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Fatal("transport failure must not be reported as no-match")
	}
}

func TestNominatimGeocode_BadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-74.0","display_name":"x"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	if _, err := c.Geocode(context.Background(), "New York, NY"); err == nil {
		t.Fatal("expected parse error for non-numeric latitude")
	}
}
