package gateway

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
	"github.com/sells-group/zittyzoom/pkg/google"
)

const msgPlacesKeyMissing = "server configuration error: places API key missing"

// handleSearch dispatches /places/search to the upstream mode and wraps the
// untouched body as {"resp": ...}.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	keyword := firstParam(q, "keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: keyword")
		return
	}
	rawMode := firstParam(q, "mode", "type")
	if rawMode == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: mode")
		return
	}
	mode, ok := gatewayclient.ParseMode(rawMode)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid parameter: mode must be one of autocomplete, textsearch, nearbysearch")
		return
	}
	lat, err := parseCoord(q, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := parseCoord(q, "lng")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.up.Places == nil {
		writeError(w, http.StatusInternalServerError, msgPlacesKeyMissing)
		return
	}

	var loc *google.LatLng
	if lat != nil && lng != nil {
		loc = &google.LatLng{Lat: *lat, Lng: *lng}
	}

	// Nearby search needs a centre; without one it degrades to text search.
	if mode == gatewayclient.ModeNearbySearch && loc == nil {
		zap.L().Debug("gateway: nearbysearch without coordinates, using textsearch",
			zap.String("keyword", keyword),
		)
		mode = gatewayclient.ModeTextSearch
	}

	var raw json.RawMessage
	switch mode {
	case gatewayclient.ModeAutocomplete:
		req := google.AutocompleteRequest{
			Input:        keyword,
			Location:     loc,
			SessionToken: firstParam(q, "sessionToken", "sessiontoken"),
		}
		if loc != nil {
			req.Radius = s.cfg.AutocompleteRadiusM
		}
		raw, err = s.up.Places.Autocomplete(r.Context(), req)
	case gatewayclient.ModeTextSearch:
		raw, err = s.up.Places.TextSearch(r.Context(), google.TextSearchRequest{Query: keyword, Location: loc})
	case gatewayclient.ModeNearbySearch:
		raw, err = s.up.Places.NearbySearch(r.Context(), google.NearbySearchRequest{
			Keyword:  keyword,
			Location: *loc,
			Radius:   s.cfg.NearbyRadiusM,
		})
	}
	s.metrics.observeUpstream("places", string(mode), err)

	if err != nil {
		status, msg := upstreamError(err, "failed to reach places provider")
		zap.L().Warn("gateway: places search failed",
			zap.String("mode", string(mode)),
			zap.Int("status", status),
			zap.Error(err),
		)
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	for _, part := range [][]byte{[]byte(`{"resp":`), raw, []byte("}\n")} {
		if _, err := w.Write(part); err != nil {
			zap.L().Debug("gateway: write search response", zap.Error(err))
			return
		}
	}
}
