// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	iconBaseURL    = "https://openweathermap.org/img/wn"
)

// Client reads current weather for a coordinate.
type Client interface {
	Current(ctx context.Context, lat, lng float64) (*Conditions, error)
}

// Conditions is the current weather at a location.
type Conditions struct {
	TempC       float64
	City        string
	Description string
	IconCode    string
}

// RoundedTemp returns the temperature rounded to a whole degree.
func (c *Conditions) RoundedTemp() int {
	return int(math.Round(c.TempC))
}

// IconURL returns the small icon image for the conditions.
func (c *Conditions) IconURL() string {
	if c.IconCode == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s.png", iconBaseURL, c.IconCode)
}

// APIError is a failed OpenWeatherMap call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather: status %d: %s", e.StatusCode, e.Message)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
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

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type currentResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Message string `json:"message"`
}

func (c *httpClient) Current(ctx context.Context, lat, lng float64) (*Conditions, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lng, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "weather: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "weather: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "weather: read response")
	}

	var cr currentResponse
	parseErr := json.Unmarshal(body, &cr)

	if resp.StatusCode != http.StatusOK {
		msg := cr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if parseErr != nil {
		return nil, eris.Wrap(parseErr, "weather: unmarshal response")
	}
	if cr.Main == nil || cr.Name == "" || len(cr.Weather) == 0 {
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Message: "incomplete weather response"}
	}

	return &Conditions{
		TempC:       cr.Main.Temp,
		City:        cr.Name,
		Description: cr.Weather[0].Description,
		IconCode:    cr.Weather[0].Icon,
	}, nil
}
