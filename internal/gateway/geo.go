package gateway

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
	"github.com/sells-group/zittyzoom/pkg/geocode"
)

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	lat, lng, problem := requireCoords(r.URL.Query())
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	if s.up.Geocoder == nil {
		writeError(w, http.StatusInternalServerError, "server configuration error: geocoding API key missing")
		return
	}

	res, err := s.up.Geocoder.Reverse(r.Context(), lat, lng)
	s.metrics.observeUpstream("geocode", "reverse", err, geocode.ErrCountryNotFound)
	if errors.Is(err, geocode.ErrCountryNotFound) {
		writeError(w, http.StatusNotFound, "country not found for this location")
		return
	}
	if err != nil {
		status, msg := upstreamError(err, "failed to reverse geocode location")
		zap.L().Warn("gateway: reverse geocode failed", zap.Int("status", status), zap.Error(err))
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, gatewayclient.Place{City: res.City, Country: res.Country})
}
