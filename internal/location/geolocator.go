package location

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
	"github.com/sells-group/zittyzoom/pkg/geocode"
)

// ErrUnsupported means the host has no way to obtain a position fix.
var ErrUnsupported = eris.New("location: geolocation not supported")

// ErrNoCountry means reverse geocoding returned no country component.
var ErrNoCountry = eris.New("location: no country for coordinates")

// Geolocator obtains a fresh position fix. Implementations must honour ctx
// cancellation since the resolver bounds each attempt with a timeout.
type Geolocator interface {
	Locate(ctx context.Context) (model.LatLng, error)
}

// GeolocatorFunc adapts a function to Geolocator.
type GeolocatorFunc func(ctx context.Context) (model.LatLng, error)

// Locate calls f.
func (f GeolocatorFunc) Locate(ctx context.Context) (model.LatLng, error) {
	return f(ctx)
}

// StaticGeolocator reports a fixed coordinate, typically from flags.
type StaticGeolocator struct {
	Lat float64
	Lng float64
}

// Locate returns the configured coordinate.
func (s StaticGeolocator) Locate(ctx context.Context) (model.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return model.LatLng{}, err
	}
	return model.LatLng{Lat: s.Lat, Lng: s.Lng}, nil
}

// NoGeolocator always fails with ErrUnsupported.
type NoGeolocator struct{}

// Locate returns ErrUnsupported.
func (NoGeolocator) Locate(context.Context) (model.LatLng, error) {
	return model.LatLng{}, ErrUnsupported
}

type providerGeolocator struct {
	client geocode.Client
}

// NewProviderGeolocator locates via the Google Geolocation API.
func NewProviderGeolocator(c geocode.Client) Geolocator {
	return &providerGeolocator{client: c}
}

func (p *providerGeolocator) Locate(ctx context.Context) (model.LatLng, error) {
	pos, err := p.client.Geolocate(ctx)
	if err != nil {
		return model.LatLng{}, eris.Wrap(err, "location: geolocate")
	}
	return model.LatLng{Lat: pos.Lat, Lng: pos.Lng}, nil
}

// ReverseGeocoder resolves a coordinate to a city and country name.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (city, country string, err error)
}

type gatewayReverser struct {
	client gatewayclient.Client
}

// NewGatewayReverser reverse geocodes through the gateway's /geo/reverse.
func NewGatewayReverser(c gatewayclient.Client) ReverseGeocoder {
	return &gatewayReverser{client: c}
}

func (g *gatewayReverser) Reverse(ctx context.Context, lat, lng float64) (string, string, error) {
	p, err := g.client.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return "", "", eris.Wrap(err, "location: reverse geocode")
	}
	if p.Country == "" {
		return "", "", ErrNoCountry
	}
	return p.City, p.Country, nil
}
