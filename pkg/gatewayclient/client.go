// Package gatewayclient talks to a running places gateway over HTTP.
package gatewayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/zittyzoom/internal/model"
)

// Mode selects the upstream search operation.
type Mode string

// Search modes understood by the gateway.
const (
	ModeAutocomplete Mode = "autocomplete"
	ModeTextSearch   Mode = "textsearch"
	ModeNearbySearch Mode = "nearbysearch"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAutocomplete, ModeTextSearch, ModeNearbySearch:
		return m, true
	}
	return "", false
}

// SearchRequest is a /places/search call. Lat and Lng are sent only when
// both are set.
type SearchRequest struct {
	Keyword      string
	Mode         Mode
	Lat          *float64
	Lng          *float64
	SessionToken string
}

// Place is the reverse geocoding answer.
type Place struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Client is the gateway surface used by the orchestrator, resolver and CLI.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (json.RawMessage, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error)
	CityHistory(ctx context.Context, city, country string) (string, error)
	CityImage(ctx context.Context, city, country string) (string, error)
	CityActivities(ctx context.Context, city, country string) ([]model.Activity, error)
	Weather(ctx context.Context, lat, lng float64) (*model.Weather, error)
	MapID(ctx context.Context) (string, error)
}

// Error is a non-2xx gateway response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: status %d: %s", e.StatusCode, e.Message)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a gateway client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	params := url.Values{
		"keyword": {req.Keyword},
		"mode":    {string(req.Mode)},
	}
	if req.Lat != nil && req.Lng != nil {
		params.Set("lat", formatFloat(*req.Lat))
		params.Set("lng", formatFloat(*req.Lng))
	}
	if req.SessionToken != "" {
		params.Set("sessionToken", req.SessionToken)
	}

	var out struct {
		Resp json.RawMessage `json:"resp"`
	}
	if err := c.get(ctx, "/places/search", params, &out); err != nil {
		return nil, err
	}
	return out.Resp, nil
}

func (c *httpClient) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	params := url.Values{"lat": {formatFloat(lat)}, "lng": {formatFloat(lng)}}

	var out Place
	if err := c.get(ctx, "/geo/reverse", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func cityParams(city, country string) url.Values {
	params := url.Values{"city": {city}}
	if country != "" {
		params.Set("country", country)
	}
	return params
}

func (c *httpClient) CityHistory(ctx context.Context, city, country string) (string, error) {
	var out struct {
		History string `json:"history"`
	}
	if err := c.get(ctx, "/city/history", cityParams(city, country), &out); err != nil {
		return "", err
	}
	return out.History, nil
}

func (c *httpClient) CityImage(ctx context.Context, city, country string) (string, error) {
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.get(ctx, "/city/image", cityParams(city, country), &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func (c *httpClient) CityActivities(ctx context.Context, city, country string) ([]model.Activity, error) {
	var out struct {
		Activities []model.Activity `json:"activities"`
	}
	if err := c.get(ctx, "/city/activities", cityParams(city, country), &out); err != nil {
		return nil, err
	}
	return out.Activities, nil
}

func (c *httpClient) Weather(ctx context.Context, lat, lng float64) (*model.Weather, error) {
	params := url.Values{"lat": {formatFloat(lat)}, "lng": {formatFloat(lng)}}

	var out model.Weather
	if err := c.get(ctx, "/weather", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) MapID(ctx context.Context) (string, error) {
	var out struct {
		MapID string `json:"mapId"`
	}
	if err := c.get(ctx, "/config/map", nil, &out); err != nil {
		return "", err
	}
	return out.MapID, nil
}

// errorBody covers both error shapes the gateway emits.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return eris.Wrap(err, "gateway: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "gateway: send request %s", path)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "gateway: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "gateway: unmarshal %s", path)
	}
	return nil
}
