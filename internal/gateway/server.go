// Package gateway is the HTTP proxy in front of the places, geocoding,
// wikipedia and weather providers. It validates parameters, dispatches
// search modes and wraps upstream payloads, and never caches or retries.
package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/pkg/geocode"
	"github.com/sells-group/zittyzoom/pkg/google"
	"github.com/sells-group/zittyzoom/pkg/weather"
	"github.com/sells-group/zittyzoom/pkg/wikipedia"
)

const (
	defaultAutocompleteRadius = 50000
	defaultNearbyRadius       = 3000
)

// Config holds gateway settings.
type Config struct {
	MapID               string
	AutocompleteRadiusM int
	NearbyRadiusM       int
	CORSOrigins         []string
}

// Upstreams are the provider clients. A nil client means its credential is
// not configured and the routes that need it answer 500.
type Upstreams struct {
	Places    google.Client
	Geocoder  geocode.Client
	Wikipedia wikipedia.Client
	Weather   weather.Client
}

// Server serves the gateway routes.
type Server struct {
	cfg     Config
	up      Upstreams
	metrics *metrics
	router  chi.Router
}

// New builds a Server and its router.
func New(cfg Config, up Upstreams) *Server {
	if cfg.AutocompleteRadiusM <= 0 {
		cfg.AutocompleteRadiusM = defaultAutocompleteRadius
	}
	if cfg.NearbyRadiusM <= 0 {
		cfg.NearbyRadiusM = defaultNearbyRadius
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{cfg: cfg, up: up, metrics: newMetrics()}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Get("/places/search", s.handleSearch)
	r.Get("/geo/reverse", s.handleReverse)
	r.Route("/city", func(r chi.Router) {
		r.Get("/history", s.handleHistory)
		r.Get("/image", s.handleImage)
		r.Get("/activities", s.handleActivities)
	})
	r.Get("/weather", s.handleWeather)
	r.Get("/config/map", s.handleMapConfig)

	return r
}

// observe logs each request and records its metrics under the matched
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, ww.Status(), elapsed)

		zap.L().Info("gateway: request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("gateway: encode response", zap.Error(err))
	}
}

// writeError answers with the {"error": ...} body used by search, geo,
// history and weather routes.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMessage answers with the {"message": ...} body used by the image
// and activities routes.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
