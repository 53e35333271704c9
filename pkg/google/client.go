// Package google is a client for the Google Places web service.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client performs Google Places API operations. Search methods return the
// upstream body unmodified once it has been checked for errors.
type Client interface {
	Autocomplete(ctx context.Context, req AutocompleteRequest) (json.RawMessage, error)
	TextSearch(ctx context.Context, req TextSearchRequest) (json.RawMessage, error)
	NearbySearch(ctx context.Context, req NearbySearchRequest) (json.RawMessage, error)
	Details(ctx context.Context, placeID string, fields []string) (*Details, error)
	PhotoURL(reference string, maxWidth int) string
}

// LatLng is a coordinate pair sent as a location bias.
type LatLng struct {
	Lat float64
	Lng float64
}

func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// AutocompleteRequest configures a Place Autocomplete call.
type AutocompleteRequest struct {
	Input        string
	Location     *LatLng
	Radius       int
	SessionToken string
}

// TextSearchRequest configures a Text Search call. Location only biases
// results, it never bounds them.
type TextSearchRequest struct {
	Query    string
	Location *LatLng
	Type     string
}

// NearbySearchRequest configures a Nearby Search call.
type NearbySearchRequest struct {
	Keyword  string
	Location LatLng
	Radius   int
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Google Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Autocomplete(ctx context.Context, req AutocompleteRequest) (json.RawMessage, error) {
	params := url.Values{"input": {req.Input}}
	if req.Location != nil {
		params.Set("location", req.Location.String())
		if req.Radius > 0 {
			params.Set("radius", strconv.Itoa(req.Radius))
		}
	}
	if req.SessionToken != "" {
		params.Set("sessiontoken", req.SessionToken)
	}
	return c.get(ctx, "/autocomplete/json", params)
}

func (c *httpClient) TextSearch(ctx context.Context, req TextSearchRequest) (json.RawMessage, error) {
	params := url.Values{"query": {req.Query}}
	if req.Location != nil {
		params.Set("location", req.Location.String())
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	return c.get(ctx, "/textsearch/json", params)
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (json.RawMessage, error) {
	params := url.Values{
		"keyword":  {req.Keyword},
		"location": {req.Location.String()},
		"radius":   {strconv.Itoa(req.Radius)},
	}
	return c.get(ctx, "/nearbysearch/json", params)
}

func (c *httpClient) Details(ctx context.Context, placeID string, fields []string) (*Details, error) {
	params := url.Values{"place_id": {placeID}}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	raw, err := c.get(ctx, "/details/json", params)
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, eris.Wrap(err, "google: unmarshal details")
	}
	return &resp.Result, nil
}

// PhotoURL builds a Place Photo URL for the given reference.
func (c *httpClient) PhotoURL(reference string, maxWidth int) string {
	params := url.Values{
		"maxwidth":        {strconv.Itoa(maxWidth)},
		"photo_reference": {reference},
		"key":             {c.apiKey},
	}
	return c.baseURL + "/photo?" + params.Encode()
}

// envelope is the status block every Places web service response carries.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "google: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "google: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "google: read response")
	}

	var env envelope
	parseErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.ErrorMessage
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Status: env.Status, Message: msg}
	}

	if parseErr != nil {
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Message: "malformed response from places provider"}
	}

	switch env.Status {
	case "", StatusOK, StatusZeroResults:
		return json.RawMessage(body), nil
	default:
		msg := env.ErrorMessage
		if msg == "" {
			msg = env.Status
		}
		return nil, &APIError{StatusCode: StatusCodeFor(env.Status), Status: env.Status, Message: msg}
	}
}
