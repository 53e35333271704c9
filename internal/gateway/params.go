package gateway

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sells-group/zittyzoom/pkg/google"
	"github.com/sells-group/zittyzoom/pkg/weather"
	"github.com/sells-group/zittyzoom/pkg/wikipedia"
)

// firstParam returns the first non-blank value among the given keys.
func firstParam(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// parseCoord reads an optional numeric parameter. Absent values give nil.
func parseCoord(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("invalid parameter: " + name + " must be a number")
	}
	return &f, nil
}

// requireCoords reads mandatory lat and lng parameters.
func requireCoords(q url.Values) (float64, float64, string) {
	for _, name := range []string{"lat", "lng"} {
		if strings.TrimSpace(q.Get(name)) == "" {
			return 0, 0, "missing required parameter: " + name
		}
	}
	lat, err := parseCoord(q, "lat")
	if err != nil {
		return 0, 0, err.Error()
	}
	lng, err := parseCoord(q, "lng")
	if err != nil {
		return 0, 0, err.Error()
	}
	return *lat, *lng, ""
}

// upstreamError maps a provider failure to the status and message the
// gateway answers with. Provider status codes pass through unchanged.
func upstreamError(err error, fallback string) (int, string) {
	var gErr *google.APIError
	if errors.As(err, &gErr) {
		return gErr.StatusCode, gErr.Message
	}
	var wErr *weather.APIError
	if errors.As(err, &wErr) {
		return wErr.StatusCode, wErr.Message
	}
	var wikiErr *wikipedia.APIError
	if errors.As(err, &wikiErr) {
		return wikiErr.StatusCode, wikiErr.Message
	}
	return http.StatusInternalServerError, fallback
}
