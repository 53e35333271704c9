// Package geocode resolves coordinates to place names via Google Geocoding and
// finds an approximate device position via Google Geolocation.
package geocode

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrCountryNotFound is returned when no result carries a country component.
var ErrCountryNotFound = eris.New("geocode: country not found for this location")

// Client reverse geocodes coordinates and geolocates the caller.
type Client interface {
	// Reverse resolves a coordinate pair to its city and country.
	Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error)

	// Geolocate estimates the caller's position from its network address.
	Geolocate(ctx context.Context) (*Position, error)
}

// ReverseResult holds the administrative names for a coordinate.
type ReverseResult struct {
	City             string `json:"city,omitempty"`
	Country          string `json:"country"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// Position is a geolocation fix.
type Position struct {
	Lat      float64
	Lng      float64
	Accuracy float64 // metres
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the Geocoding API endpoint.
func WithBaseURL(url string) Option {
	return func(g *geocoder) {
		g.geocodeURL = strings.TrimRight(url, "/")
	}
}

// WithGeolocationURL overrides the Geolocation API endpoint.
func WithGeolocationURL(url string) Option {
	return func(g *geocoder) {
		g.geolocateURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

type geocoder struct {
	httpClient   *http.Client
	apiKey       string
	geocodeURL   string
	geolocateURL string
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(apiKey string, opts ...Option) Client {
	g := &geocoder{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		geocodeURL:   googleGeocodeURL,
		geolocateURL: googleGeolocateURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
