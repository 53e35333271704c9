package google

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
)

// Places web service status values.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusNotFound       = "NOT_FOUND"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

// APIError reports a failed upstream call together with the HTTP status a
// proxy should answer with.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("google: %s (%d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("google: unexpected status %d: %s", e.StatusCode, e.Message)
}

// StatusCodeFor maps a Google web service status string onto an HTTP status.
func StatusCodeFor(status string) int {
	switch status {
	case StatusInvalidRequest:
		return http.StatusBadRequest
	case StatusRequestDenied:
		return http.StatusForbidden
	case StatusNotFound:
		return http.StatusNotFound
	case StatusOverQueryLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Photo is a photo attached to a place.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// OpeningHours is the opening hours block of a place.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Result is the subset of a search result the server itself reads. Search
// payloads are otherwise passed through untouched.
type Result struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Photos  []Photo  `json:"photos"`
	Types   []string `json:"types"`
}

// Details is a Place Details result.
type Details struct {
	Name         string        `json:"name"`
	Photos       []Photo       `json:"photos"`
	OpeningHours *OpeningHours `json:"opening_hours"`
}

type detailsResponse struct {
	Result Details `json:"result"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// DecodeResults reads the results array out of a raw search payload.
func DecodeResults(raw json.RawMessage) ([]Result, error) {
	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, eris.Wrap(err, "google: unmarshal results")
	}
	return resp.Results, nil
}
