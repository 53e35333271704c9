// Package session owns one resolver and one orchestrator for the lifetime of
// a UI session and exposes the read-only view consumers render from.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/location"
	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/internal/places"
)

// View is what list, map and city-info consumers receive. SelectedPlaceID
// is a key into PlaceList.
type View struct {
	PlaceList              []model.SearchResult `json:"placeList"`
	SelectedPlaceID        string               `json:"selectedPlaceId,omitempty"`
	MapCenter              *model.SearchCenter  `json:"mapCenter"`
	UserCurrentGeolocation *model.LocationData  `json:"userCurrentGeolocation"`
}

// Session ties location changes to searches: whenever the resolver
// publishes new coordinates, the active category or query is re-run there.
type Session struct {
	resolver     *location.Resolver
	orchestrator *places.Orchestrator

	mu          sync.Mutex
	ctx         context.Context
	last        *model.LatLng
	unsubscribe func()
}

// New creates a Session. Call Close to detach it from the resolver.
func New(r *location.Resolver, o *places.Orchestrator) *Session {
	s := &Session{resolver: r, orchestrator: o, ctx: context.Background()}
	s.unsubscribe = r.Subscribe(s.onLocation)
	return s
}

// Close stops reacting to location changes.
func (s *Session) Close() {
	s.unsubscribe()
}

// Resolver returns the session's location resolver.
func (s *Session) Resolver() *location.Resolver {
	return s.resolver
}

// Orchestrator returns the session's search orchestrator.
func (s *Session) Orchestrator() *places.Orchestrator {
	return s.orchestrator
}

// Start resolves the initial location.
func (s *Session) Start(ctx context.Context) model.LocationData {
	s.setContext(ctx)
	return s.resolver.Resolve(ctx)
}

// Toggle flips the location preference. The resulting location change
// re-runs the current search before Toggle returns.
func (s *Session) Toggle(ctx context.Context) places.State {
	s.setContext(ctx)
	s.resolver.Toggle(ctx)
	return s.orchestrator.State()
}

func (s *Session) setContext(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// Rerun repeats the current intent at loc: the active category, else the
// current query, else the default query.
func (s *Session) Rerun(ctx context.Context, loc *model.LocationData) places.State {
	o := s.orchestrator
	if category := o.ActiveCategory(); category != "" {
		// Clear first so SelectCategory selects instead of toggling off.
		o.SearchByQuery(ctx, "")
		return o.SelectCategory(ctx, category, loc)
	}

	query := o.CurrentQuery()
	if query == "" {
		query = o.DefaultQuery()
	}
	if !loc.HasCoordinates() {
		return o.SearchByQuery(ctx, query)
	}
	lat, lng := loc.Coordinates()
	return o.SearchByQuery(ctx, query, places.WithCoordinates(lat, lng))
}

// onLocation re-runs the search when coordinates move. Place-name fills
// keep the same coordinates and are ignored, as is any change before the
// first search.
func (s *Session) onLocation(loc model.LocationData) {
	if !loc.HasCoordinates() {
		return
	}
	lat, lng := loc.Coordinates()
	next := model.LatLng{Lat: lat, Lng: lng}

	s.mu.Lock()
	moved := s.last == nil || *s.last != next
	s.last = &next
	ctx := s.ctx
	s.mu.Unlock()

	if !moved || s.orchestrator.State().Status == places.StatusIdle {
		return
	}
	zap.L().Debug("session: location moved, re-running search",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
	)
	s.Rerun(ctx, &loc)
}

// View returns a fresh snapshot for consumers.
func (s *Session) View() View {
	st := s.orchestrator.State()
	v := View{
		PlaceList:              st.Results,
		MapCenter:              st.Center,
		UserCurrentGeolocation: s.resolver.Current(),
	}
	if st.Selected != nil {
		v.SelectedPlaceID = st.Selected.PlaceID
	}
	return v
}
