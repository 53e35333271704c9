package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/pkg/google"
	"github.com/sells-group/zittyzoom/pkg/wikipedia"
)

const (
	photoMaxWidth     = 400
	maxActivities     = 6
	activityFallback  = "/city-icon.webp"
	hoursNotAvailable = "Hours not available"
)

var activityDetailFields = []string{"name", "photos", "opening_hours"}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := firstParam(q, "city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "City parameter is required.")
		return
	}
	if s.up.Wikipedia == nil {
		writeError(w, http.StatusInternalServerError, "server configuration error: wikipedia client missing")
		return
	}
	country := firstParam(q, "country")

	history, err := wikipedia.History(r.Context(), s.up.Wikipedia, city, country)
	s.metrics.observeUpstream("wikipedia", "history", err, wikipedia.ErrNotFound)
	if errors.Is(err, wikipedia.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No relevant Wikipedia entry found for %s.", city))
		return
	}
	if err != nil {
		status, msg := upstreamError(err, "Failed to fetch from Wikipedia.")
		zap.L().Warn("gateway: city history failed", zap.String("city", city), zap.Error(err))
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"history": history})
}

func cityQuery(city, country string) string {
	if country == "" {
		return city
	}
	return city + ", " + country
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := firstParam(q, "city")
	if city == "" {
		writeMessage(w, http.StatusBadRequest, "City is required")
		return
	}
	if s.up.Places == nil {
		writeMessage(w, http.StatusInternalServerError, msgPlacesKeyMissing)
		return
	}

	raw, err := s.up.Places.TextSearch(r.Context(), google.TextSearchRequest{Query: cityQuery(city, firstParam(q, "country"))})
	s.metrics.observeUpstream("places", "city_image", err)
	if err != nil {
		status, msg := upstreamError(err, "Failed to fetch image")
		writeMessage(w, status, msg)
		return
	}
	results, err := google.DecodeResults(raw)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch image")
		return
	}
	if len(results) == 0 || len(results[0].Photos) == 0 || results[0].Photos[0].PhotoReference == "" {
		writeMessage(w, http.StatusNotFound, "No image found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"imageUrl": s.up.Places.PhotoURL(results[0].Photos[0].PhotoReference, photoMaxWidth),
	})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := firstParam(q, "city")
	if city == "" {
		writeMessage(w, http.StatusBadRequest, "City is required")
		return
	}
	if s.up.Places == nil {
		writeMessage(w, http.StatusInternalServerError, msgPlacesKeyMissing)
		return
	}

	raw, err := s.up.Places.TextSearch(r.Context(), google.TextSearchRequest{
		Query: "points of interest in " + cityQuery(city, firstParam(q, "country")),
		Type:  "tourist_attraction",
	})
	s.metrics.observeUpstream("places", "city_activities", err)
	if err != nil {
		status, msg := upstreamError(err, "Failed to fetch activities")
		writeMessage(w, status, msg)
		return
	}
	results, err := google.DecodeResults(raw)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}
	if len(results) > maxActivities {
		results = results[:maxActivities]
	}

	activities, err := s.activities(r, results)
	if err != nil {
		zap.L().Warn("gateway: city activities aborted", zap.String("city", city), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Activity{"activities": activities})
}

// activities fetches details for every result concurrently. A failed
// details call only degrades its own entry; the group fails when the
// request context is done.
func (s *Server) activities(r *http.Request, results []google.Result) ([]model.Activity, error) {
	out := make([]model.Activity, len(results))
	g, gctx := errgroup.WithContext(r.Context())

	for i, place := range results {
		i, place := i, place
		g.Go(func() error {
			a := model.Activity{
				Name:  place.Name,
				Image: activityFallback,
				Hours: hoursNotAvailable,
			}
			if a.Name == "" {
				a.Name = "Unknown Activity"
			}
			if len(place.Photos) > 0 && place.Photos[0].PhotoReference != "" {
				a.Image = s.up.Places.PhotoURL(place.Photos[0].PhotoReference, photoMaxWidth)
			}

			details, err := s.up.Places.Details(gctx, place.PlaceID, activityDetailFields)
			s.metrics.observeUpstream("places", "details", err)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				zap.L().Warn("gateway: place details failed",
					zap.String("place_id", place.PlaceID),
					zap.Error(err),
				)
				out[i] = a
				return nil
			}

			if oh := details.OpeningHours; oh != nil {
				a.OpenNow = oh.OpenNow
				if len(oh.WeekdayText) > 0 && oh.WeekdayText[0] != "" {
					a.Hours = oh.WeekdayText[0]
				}
			}
			out[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
