package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/pkg/google"
)

const (
	googleGeocodeURL   = "https://maps.googleapis.com/maps/api/geocode/json"
	googleGeolocateURL = "https://www.googleapis.com/geolocation/v1/geolocate"
)

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results      []googleResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
}

type googleResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Types             []string           `json:"types"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// cityTypes are component types that name a city, most specific first.
var cityTypes = []string{"locality", "postal_town", "administrative_area_level_2"}

// Reverse resolves lat/lng through the Google Geocoding API. The country is
// taken from the result tagged "country"; the city from the first locality-like
// component of any result.
func (g *geocoder) Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error) {
	if g.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	params := url.Values{
		"latlng": {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"key":    {g.apiKey},
	}

	reqURL := g.geocodeURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var googleResp googleGeocodeResponse
	parseErr := json.Unmarshal(body, &googleResp)

	if resp.StatusCode != http.StatusOK {
		msg := googleResp.ErrorMessage
		if msg == "" {
			msg = "failed to reverse geocode location"
		}
		return nil, &google.APIError{StatusCode: resp.StatusCode, Status: googleResp.Status, Message: msg}
	}
	if parseErr != nil {
		return nil, &google.APIError{StatusCode: http.StatusInternalServerError, Message: "malformed response from geocoding provider"}
	}

	switch googleResp.Status {
	case google.StatusOK:
	case google.StatusZeroResults:
		return nil, ErrCountryNotFound
	default:
		msg := googleResp.ErrorMessage
		if msg == "" {
			msg = "failed to reverse geocode location"
		}
		return nil, &google.APIError{StatusCode: google.StatusCodeFor(googleResp.Status), Status: googleResp.Status, Message: msg}
	}

	result := extractPlace(googleResp.Results)
	if result.Country == "" {
		zap.L().Debug("geocode: no country component",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Int("results", len(googleResp.Results)),
		)
		return nil, ErrCountryNotFound
	}
	return result, nil
}

// extractPlace picks the country and city names out of geocoding results.
func extractPlace(results []googleResult) *ReverseResult {
	out := &ReverseResult{}
	for _, r := range results {
		if hasType(r.Types, "country") && len(r.AddressComponents) > 0 {
			out.Country = r.AddressComponents[0].LongName
			break
		}
	}
	if out.Country == "" {
		// Some responses omit the country-level result but still carry the
		// component on the street address.
		for _, r := range results {
			for _, c := range r.AddressComponents {
				if hasType(c.Types, "country") {
					out.Country = c.LongName
					break
				}
			}
			if out.Country != "" {
				break
			}
		}
	}

	for _, want := range cityTypes {
		for _, r := range results {
			for _, c := range r.AddressComponents {
				if hasType(c.Types, want) {
					out.City = c.LongName
					break
				}
			}
			if out.City != "" {
				break
			}
		}
		if out.City != "" {
			break
		}
	}

	if len(results) > 0 {
		out.FormattedAddress = results[0].FormattedAddress
	}
	return out
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

type geolocateRequest struct {
	ConsiderIP bool `json:"considerIp"`
}

type geolocateResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Geolocate asks the Google Geolocation API for an IP-based position.
func (g *geocoder) Geolocate(ctx context.Context) (*Position, error) {
	if g.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	body, err := json.Marshal(geolocateRequest{ConsiderIP: true})
	if err != nil {
		return nil, eris.Wrap(err, "geocode: geolocate marshal request")
	}

	reqURL := g.geolocateURL + "?" + url.Values{"key": {g.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "geocode: geolocate build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: geolocate request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: geolocate read body")
	}

	var out geolocateResponse
	parseErr := json.Unmarshal(respBody, &out)

	if resp.StatusCode != http.StatusOK || out.Error != nil {
		msg := "geolocation failed"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return nil, &google.APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if parseErr != nil {
		return nil, eris.Wrap(parseErr, "geocode: geolocate parse response")
	}

	return &Position{Lat: out.Location.Lat, Lng: out.Location.Lng, Accuracy: out.Accuracy}, nil
}
