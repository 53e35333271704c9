package places

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/zittyzoom/internal/model"
)

// ErrMalformed marks a gateway body that is not a search response.
var ErrMalformed = eris.New("places: malformed search response")

type rawLocation struct {
	Lat json.RawMessage `json:"lat"`
	Lng json.RawMessage `json:"lng"`
}

type rawResult struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Vicinity *string `json:"vicinity"`
	Geometry *struct {
		Location *rawLocation `json:"location"`
	} `json:"geometry"`
	Photos               []model.Photo       `json:"photos"`
	Rating               *float64            `json:"rating"`
	UserRatingsTotal     *int                `json:"user_ratings_total"`
	PriceLevel           *int                `json:"price_level"`
	Types                []string            `json:"types"`
	FormattedAddress     string              `json:"formatted_address"`
	FormattedPhoneNumber string              `json:"formatted_phone_number"`
	OpeningHours         *model.OpeningHours `json:"opening_hours"`
	URL                  string              `json:"url"`
}

// NormalizeResults decodes a text or nearby search body into canonical
// results. Upstream order is preserved and results whose coordinates cannot
// be coerced to plain numbers are skipped.
func NormalizeResults(raw json.RawMessage) ([]model.SearchResult, error) {
	var body struct {
		Results []rawResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, eris.Wrapf(ErrMalformed, "decode results: %v", err)
	}

	out := make([]model.SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		if r.Geometry == nil || r.Geometry.Location == nil {
			continue
		}
		lat, ok := coerceNumber(r.Geometry.Location.Lat)
		if !ok {
			continue
		}
		lng, ok := coerceNumber(r.Geometry.Location.Lng)
		if !ok {
			continue
		}

		vicinity := r.FormattedAddress
		if r.Vicinity != nil && *r.Vicinity != "" {
			vicinity = *r.Vicinity
		}
		photos := r.Photos
		if photos == nil {
			photos = []model.Photo{}
		}
		types := r.Types
		if types == nil {
			types = []string{}
		}

		out = append(out, model.SearchResult{
			PlaceID:              r.PlaceID,
			Name:                 r.Name,
			Vicinity:             vicinity,
			Geometry:             model.Geometry{Location: model.LatLng{Lat: lat, Lng: lng}},
			Photos:               photos,
			Rating:               r.Rating,
			UserRatingsTotal:     r.UserRatingsTotal,
			PriceLevel:           r.PriceLevel,
			Types:                types,
			FormattedAddress:     r.FormattedAddress,
			FormattedPhoneNumber: r.FormattedPhoneNumber,
			OpeningHours:         r.OpeningHours,
			URL:                  r.URL,
		})
	}
	return out, nil
}

// coerceNumber accepts a JSON number, a numeric string, or an object
// wrapping either under "value".
func coerceNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case '{':
		var wrapped struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Value) == 0 {
			return 0, false
		}
		if v := bytes.TrimSpace(wrapped.Value); len(v) > 0 && v[0] == '{' {
			return 0, false
		}
		return coerceNumber(wrapped.Value)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DecodePredictions extracts autocomplete suggestions.
func DecodePredictions(raw json.RawMessage) ([]model.Prediction, error) {
	var body struct {
		Predictions []model.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, eris.Wrapf(ErrMalformed, "decode predictions: %v", err)
	}
	if body.Predictions == nil {
		return []model.Prediction{}, nil
	}
	return body.Predictions, nil
}
