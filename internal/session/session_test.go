package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/zittyzoom/internal/location"
	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/internal/places"
	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
	"github.com/sells-group/zittyzoom/pkg/gatewayclient/mocks"
)

const parisResults = `{"results":[{"place_id":"p1","name":"Cafe","geometry":{"location":{"lat":48.85,"lng":2.35}}}]}`
const joburgResults = `{"results":[{"place_id":"j1","name":"Shisa","geometry":{"location":{"lat":-26.2,"lng":28.04}}}]}`

type staticReverser struct{}

func (staticReverser) Reverse(_ context.Context, lat, _ float64) (string, string, error) {
	if lat > 0 {
		return "Paris", "France", nil
	}
	return "Johannesburg", "South Africa", nil
}

func at(lat float64) any {
	return mock.MatchedBy(func(r gatewayclient.SearchRequest) bool {
		return r.Lat != nil && *r.Lat == lat
	})
}

func newSession(t *testing.T, gw *mocks.MockClient) *Session {
	t.Helper()
	r := location.NewResolver(location.StaticGeolocator{Lat: 48.8566, Lng: 2.3522}, staticReverser{}, location.Config{})
	o := places.New(gw, places.Config{})
	s := New(r, o)
	t.Cleanup(s.Close)
	return s
}

func TestStart_DoesNotSearchWhileIdle(t *testing.T) {
	gw := mocks.NewMockClient(t)
	s := newSession(t, gw)

	loc := s.Start(context.Background())

	assert.Equal(t, "Paris", loc.CityName())
	gw.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)

	v := s.View()
	assert.Empty(t, v.PlaceList)
	assert.Nil(t, v.MapCenter)
	require.NotNil(t, v.UserCurrentGeolocation)
	assert.Equal(t, "France", v.UserCurrentGeolocation.CountryName())
}

func TestToggle_RerunsQueryAtNewLocation(t *testing.T) {
	gw := mocks.NewMockClient(t)
	gw.On("Search", mock.Anything, at(48.8566)).Return(parisResults, nil).Once()
	gw.On("Search", mock.Anything, mock.MatchedBy(func(r gatewayclient.SearchRequest) bool {
		return r.Keyword == "coffee" && r.Lat != nil && *r.Lat == -26.2041
	})).Return(joburgResults, nil).Once()

	s := newSession(t, gw)
	loc := s.Start(context.Background())
	lat, lng := loc.Coordinates()
	s.Orchestrator().SearchByQuery(context.Background(), "coffee", places.WithCoordinates(lat, lng))

	st := s.Toggle(context.Background())

	assert.Equal(t, places.StatusSuccess, st.Status)
	require.Len(t, st.Results, 1)
	assert.Equal(t, "j1", st.Results[0].PlaceID)
	assert.Equal(t, "Johannesburg", s.View().UserCurrentGeolocation.CityName())
}

func TestToggle_RerunsActiveCategory(t *testing.T) {
	gw := mocks.NewMockClient(t)
	gw.On("Search", mock.Anything, at(48.8566)).Return(parisResults, nil).Once()
	gw.On("Search", mock.Anything, mock.MatchedBy(func(r gatewayclient.SearchRequest) bool {
		return r.Keyword == "hotel" && r.Lat != nil && *r.Lat == -26.2041
	})).Return(joburgResults, nil).Once()

	s := newSession(t, gw)
	loc := s.Start(context.Background())
	s.Orchestrator().SelectCategory(context.Background(), "hotel", &loc)

	st := s.Toggle(context.Background())

	assert.Equal(t, "hotel", st.ActiveCategory)
	require.Len(t, st.Results, 1)
	assert.Equal(t, "j1", st.Results[0].PlaceID)
}

func TestToggle_RoundTripRestoresLocation(t *testing.T) {
	gw := mocks.NewMockClient(t)
	gw.On("Search", mock.Anything, mock.Anything).Return(parisResults, nil)

	s := newSession(t, gw)
	original := s.Start(context.Background())
	lat, lng := original.Coordinates()
	s.Orchestrator().SearchByQuery(context.Background(), "museum", places.WithCoordinates(lat, lng))

	s.Toggle(context.Background())
	s.Toggle(context.Background())

	current := s.Resolver().Current()
	require.NotNil(t, current)
	assert.True(t, current.Equal(original))
	assert.Equal(t, "museum", s.Orchestrator().CurrentQuery())
}

func TestView_SelectedPlaceID(t *testing.T) {
	gw := mocks.NewMockClient(t)
	gw.On("Search", mock.Anything, mock.Anything).Return(parisResults, nil).Once()

	s := newSession(t, gw)
	st := s.Orchestrator().SearchByQuery(context.Background(), "cafe", places.WithCoordinates(48.8566, 2.3522))
	require.Len(t, st.Results, 1)
	s.Orchestrator().SelectPlace(&st.Results[0])

	v := s.View()
	assert.Equal(t, "p1", v.SelectedPlaceID)
	require.NotNil(t, v.MapCenter)
	assert.Equal(t, model.SearchCenter{Lat: 48.85, Lng: 2.35}, *v.MapCenter)
	assert.Nil(t, v.UserCurrentGeolocation)

	v.PlaceList[0].Name = "mutated"
	assert.Equal(t, "Cafe", s.View().PlaceList[0].Name)
}

func TestRerun_DefaultQueryWhenNoIntent(t *testing.T) {
	gw := mocks.NewMockClient(t)
	gw.On("Search", mock.Anything, mock.MatchedBy(func(r gatewayclient.SearchRequest) bool {
		return r.Keyword == "Restaurants"
	})).Return(joburgResults, nil).Once()

	s := newSession(t, gw)
	loc := location.DefaultFallback()

	st := s.Rerun(context.Background(), &loc)
	assert.Equal(t, "Restaurants", st.Query)
}
