package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/zittyzoom/internal/location"
	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/internal/places"
	"github.com/sells-group/zittyzoom/internal/session"
	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
	"github.com/sells-group/zittyzoom/pkg/geocode"
)

var (
	gatewayURL         string
	flagLat            float64
	flagLng            float64
	useDefaultLocation bool
)

// clientEnv is everything a client-side command needs for one session.
type clientEnv struct {
	gw      gatewayclient.Client
	session *session.Session
}

func (e *clientEnv) Close() {
	e.session.Close()
}

func newEnv(gw gatewayclient.Client, geo location.Geolocator, lc location.Config, defaultQuery string) *clientEnv {
	res := location.NewResolver(geo, location.NewGatewayReverser(gw), lc)
	orch := places.New(gw, places.Config{DefaultQuery: defaultQuery})
	return &clientEnv{gw: gw, session: session.New(res, orch)}
}

// newClientEnv builds a session against the configured gateway.
func newClientEnv(cmd *cobra.Command) (*clientEnv, error) {
	if gatewayURL != "" {
		cfg.Gateway.URL = gatewayURL
	}
	if err := cfg.Validate("client"); err != nil {
		return nil, err
	}

	gw := gatewayclient.NewClient(cfg.Gateway.URL,
		gatewayclient.WithTimeout(time.Duration(cfg.Gateway.TimeoutSecs)*time.Second),
	)
	fb := cfg.Location.Fallback
	lc := location.Config{
		Fallback: model.NewLocation(fb.Lat, fb.Lng).WithPlace(fb.City, fb.Country),
		Timeout:  time.Duration(cfg.Location.TimeoutSecs) * time.Second,
	}
	return newEnv(gw, newGeolocator(cmd), lc, cfg.Search.DefaultQuery), nil
}

// newGeolocator prefers --lat/--lng, then the configured provider.
func newGeolocator(cmd *cobra.Command) location.Geolocator {
	flags := cmd.Flags()
	if flags.Changed("lat") && flags.Changed("lng") {
		return location.StaticGeolocator{Lat: flagLat, Lng: flagLng}
	}

	switch cfg.Location.Provider {
	case "google":
		key := cfg.Google.GeocodingKey()
		if key == "" {
			return location.NoGeolocator{}
		}
		return location.NewProviderGeolocator(geocode.NewClient(key,
			geocode.WithBaseURL(cfg.Google.GeocodeBaseURL),
			geocode.WithGeolocationURL(cfg.Google.GeolocationBaseURL),
		))
	default:
		return location.NoGeolocator{}
	}
}

// addClientFlags registers the gateway and location flags shared by
// client-side commands.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gatewayURL, "gateway", "", "gateway base URL (default from config)")
	cmd.Flags().Float64Var(&flagLat, "lat", 0, "use this latitude instead of geolocation")
	cmd.Flags().Float64Var(&flagLng, "lng", 0, "use this longitude instead of geolocation")
	cmd.Flags().BoolVar(&useDefaultLocation, "default-location", false, "use the fallback location even when one is detected")
}
