// Package wikipedia fetches article introductions from the MediaWiki API.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// ErrNotFound is returned when no usable article exists for a title.
var ErrNotFound = errors.New("wikipedia: no article found")

// Client reads article extracts.
type Client interface {
	// Extract returns the plain-text introduction of the article with the
	// given title, following redirects.
	Extract(ctx context.Context, title string) (string, error)
}

// APIError is a non-2xx or explicit MediaWiki error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wikipedia: status %d: %s", e.StatusCode, e.Message)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API endpoint.
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
	baseURL string
	http    *http.Client
}

// NewClient creates a Wikipedia client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type queryResponse struct {
	Query *struct {
		Pages map[string]struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (c *httpClient) Extract(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"format":      {"json"},
		"titles":      {title},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", eris.Wrap(err, "wikipedia: create request")
	}
	req.Header.Set("User-Agent", "zittyzoom/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "wikipedia: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "wikipedia: read response")
	}

	var qr queryResponse
	parseErr := json.Unmarshal(body, &qr)

	if resp.StatusCode != http.StatusOK || parseErr != nil || qr.Query == nil {
		msg := "failed to fetch from Wikipedia"
		if qr.Error != nil && qr.Error.Info != "" {
			msg = qr.Error.Info
		}
		code := resp.StatusCode
		if code == http.StatusOK {
			code = http.StatusInternalServerError
		}
		return "", &APIError{StatusCode: code, Message: msg}
	}

	for id, page := range qr.Query.Pages {
		if id == "-1" || page.Extract == "" {
			return "", ErrNotFound
		}
		return page.Extract, nil
	}
	return "", ErrNotFound
}
