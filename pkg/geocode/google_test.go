package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/zittyzoom/pkg/google"
)

const johannesburgResponse = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "1 Commissioner St, Johannesburg, 2001, South Africa",
      "types": ["street_address"],
      "address_components": [
        {"long_name": "1", "short_name": "1", "types": ["street_number"]},
        {"long_name": "Johannesburg", "short_name": "JHB", "types": ["locality", "political"]},
        {"long_name": "South Africa", "short_name": "ZA", "types": ["country", "political"]}
      ]
    },
    {
      "formatted_address": "South Africa",
      "types": ["country", "political"],
      "address_components": [
        {"long_name": "South Africa", "short_name": "ZA", "types": ["country", "political"]}
      ]
    }
  ]
}`

func TestReverse_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-26.2041,28.0473", r.URL.Query().Get("latlng"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(johannesburgResponse))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	result, err := client.Reverse(context.Background(), -26.2041, 28.0473)

	require.NoError(t, err)
	assert.Equal(t, "South Africa", result.Country)
	assert.Equal(t, "Johannesburg", result.City)
	assert.Equal(t, "1 Commissioner St, Johannesburg, 2001, South Africa", result.FormattedAddress)
}

func TestReverse_DefaultEndpointRewritten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		_, _ = w.Write([]byte(johannesburgResponse))
	}))
	defer srv.Close()

	hc := newRewriteClient(srv.URL, "https://maps.googleapis.com/maps/api/geocode")
	client := NewClient("test-key", WithHTTPClient(hc))
	result, err := client.Reverse(context.Background(), -26.2041, 28.0473)

	require.NoError(t, err)
	assert.Equal(t, "South Africa", result.Country)
}

func TestReverse_NoCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"types":["natural_feature"],"address_components":[{"long_name":"Atlantic Ocean","types":["natural_feature"]}]}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	result, err := client.Reverse(context.Background(), 0, -30)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestReverse_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Reverse(context.Background(), 0, 0)

	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestReverse_RequestDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("bad", WithBaseURL(srv.URL))
	_, err := client.Reverse(context.Background(), 1, 1)

	var apiErr *google.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "The provided API key is invalid.", apiErr.Message)
}

func TestReverse_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Reverse(context.Background(), 1, 1)

	var apiErr *google.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestReverse_MissingKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Reverse(context.Background(), 1, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

func TestExtractPlace_CityFallbacks(t *testing.T) {
	results := []googleResult{
		{
			AddressComponents: []addressComponent{
				{LongName: "Kirkwall", Types: []string{"postal_town"}},
				{LongName: "United Kingdom", Types: []string{"country"}},
			},
		},
	}
	out := extractPlace(results)
	assert.Equal(t, "Kirkwall", out.City)
	assert.Equal(t, "United Kingdom", out.Country)
}

func TestGeolocate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body geolocateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.ConsiderIP)

		_, _ = w.Write([]byte(`{"location":{"lat":-33.9249,"lng":18.4241},"accuracy":1200}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithGeolocationURL(srv.URL))
	pos, err := client.Geolocate(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, -33.9249, pos.Lat, 0.0001)
	assert.InDelta(t, 18.4241, pos.Lng, 0.0001)
	assert.InDelta(t, 1200, pos.Accuracy, 0.1)
}

func TestGeolocate_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithGeolocationURL(srv.URL))
	pos, err := client.Geolocate(context.Background())

	assert.Nil(t, pos)
	var apiErr *google.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestErrCountryNotFound_MatchesThroughWrap(t *testing.T) {
	err := eris.Wrap(ErrCountryNotFound, "gateway: reverse")
	assert.ErrorIs(t, err, ErrCountryNotFound)
	assert.Contains(t, err.Error(), "country not found for this location")
}
