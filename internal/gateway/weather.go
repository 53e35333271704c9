package gateway

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/model"
)

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, lng, problem := requireCoords(r.URL.Query())
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	if s.up.Weather == nil {
		writeError(w, http.StatusInternalServerError, "server configuration error: weather API key missing")
		return
	}

	c, err := s.up.Weather.Current(r.Context(), lat, lng)
	s.metrics.observeUpstream("weather", "current", err)
	if err != nil {
		status, msg := upstreamError(err, "failed to fetch weather")
		zap.L().Warn("gateway: weather failed", zap.Int("status", status), zap.Error(err))
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, model.Weather{
		TempC:       c.RoundedTemp(),
		City:        c.City,
		Description: c.Description,
		Icon:        c.IconURL(),
	})
}

// handleMapConfig exposes the map-rendering identifier to front ends.
func (s *Server) handleMapConfig(w http.ResponseWriter, _ *http.Request) {
	if s.cfg.MapID == "" {
		writeError(w, http.StatusInternalServerError, "server configuration error: map ID missing")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mapId": s.cfg.MapID})
}
