package gateway

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sells-group/zittyzoom/pkg/google"
	"github.com/sells-group/zittyzoom/pkg/google/mocks"
)

const upstreamBody = `{"html_attributions":[],"results":[{"place_id":"x","geometry":{"location":{"lat":1.5,"lng":2.5}}}],"status":"OK"}`

func TestSearch_TextSearchWrapsRawBody(t *testing.T) {
	places := mocks.NewMockClient(t)
	places.On("TextSearch", mock.Anything, google.TextSearchRequest{
		Query:    "coffee shops",
		Location: &google.LatLng{Lat: -26.2041, Lng: 28.0473},
	}).Return(upstreamBody, nil).Once()

	s := New(Config{}, Upstreams{Places: places})
	rec := get(t, s.Handler(), "/places/search?keyword=coffee+shops&mode=textsearch&lat=-26.2041&lng=28.0473")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"resp":`+upstreamBody+"}\n", rec.Body.String())
}

func TestSearch_Autocomplete(t *testing.T) {
	places := mocks.NewMockClient(t)
	places.On("Autocomplete", mock.Anything, google.AutocompleteRequest{
		Input:        "sand",
		Location:     &google.LatLng{Lat: -26.2, Lng: 28},
		Radius:       50000,
		SessionToken: "tok-1",
	}).Return(`{"predictions":[],"status":"ZERO_RESULTS"}`, nil).Once()
	places.On("Autocomplete", mock.Anything, google.AutocompleteRequest{
		Input:        "sand",
		SessionToken: "tok-2",
	}).Return(`{"predictions":[],"status":"ZERO_RESULTS"}`, nil).Once()

	s := New(Config{}, Upstreams{Places: places})

	rec := get(t, s.Handler(), "/places/search?keyword=sand&mode=autocomplete&lat=-26.2&lng=28&sessionToken=tok-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Legacy parameter names.
	rec = get(t, s.Handler(), "/places/search?keyword=sand&type=autocomplete&sessiontoken=tok-2")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearch_NearbySearch(t *testing.T) {
	places := mocks.NewMockClient(t)
	places.On("NearbySearch", mock.Anything, google.NearbySearchRequest{
		Keyword:  "restaurant",
		Location: google.LatLng{Lat: -26.2041, Lng: 28.0473},
		Radius:   3000,
	}).Return(upstreamBody, nil).Once()

	s := New(Config{}, Upstreams{Places: places})
	rec := get(t, s.Handler(), "/places/search?keyword=restaurant&mode=nearbysearch&lat=-26.2041&lng=28.0473")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearch_NearbyWithoutCoordinatesFallsBackToTextSearch(t *testing.T) {
	places := mocks.NewMockClient(t)
	places.On("TextSearch", mock.Anything, google.TextSearchRequest{Query: "restaurant"}).
		Return(upstreamBody, nil).Twice()

	s := New(Config{}, Upstreams{Places: places})

	rec := get(t, s.Handler(), "/places/search?keyword=restaurant&mode=nearbysearch")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s.Handler(), "/places/search?keyword=restaurant&mode=nearbysearch&lat=-26.2")
	assert.Equal(t, http.StatusOK, rec.Code)

	places.AssertNotCalled(t, "NearbySearch", mock.Anything, mock.Anything)
}

func TestSearch_Validation(t *testing.T) {
	places := mocks.NewMockClient(t)
	s := New(Config{}, Upstreams{Places: places})

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"missing keyword", "/places/search?mode=textsearch", `{"error":"missing required parameter: keyword"}`},
		{"blank keyword", "/places/search?keyword=%20&mode=textsearch", `{"error":"missing required parameter: keyword"}`},
		{"missing mode", "/places/search?keyword=x", `{"error":"missing required parameter: mode"}`},
		{"bad mode", "/places/search?keyword=x&mode=findplace", `{"error":"invalid parameter: mode must be one of autocomplete, textsearch, nearbysearch"}`},
		{"bad lat", "/places/search?keyword=x&mode=textsearch&lat=north&lng=1", `{"error":"invalid parameter: lat must be a number"}`},
		{"bad lng", "/places/search?keyword=x&mode=textsearch&lat=1&lng=NaN", `{"error":"invalid parameter: lng must be a number"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestSearch_MissingKey(t *testing.T) {
	s := New(Config{}, Upstreams{})

	rec := get(t, s.Handler(), "/places/search?keyword=x&mode=textsearch")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"server configuration error: places API key missing"}`, rec.Body.String())
}

func TestSearch_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"over limit", &google.APIError{StatusCode: 429, Status: google.StatusOverQueryLimit, Message: "quota"}, 429, "quota"},
		{"denied", &google.APIError{StatusCode: 403, Status: google.StatusRequestDenied, Message: "The provided API key is invalid."}, 403, "The provided API key is invalid."},
		{"upstream 503", &google.APIError{StatusCode: 503, Message: "Service Unavailable"}, 503, "Service Unavailable"},
		{"malformed", &google.APIError{StatusCode: 500, Message: "malformed response from places provider"}, 500, "malformed response from places provider"},
		{"transport", errors.New("dial tcp: connection refused"), 500, "failed to reach places provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			places := mocks.NewMockClient(t)
			places.On("TextSearch", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := get(t, New(Config{}, Upstreams{Places: places}).Handler(), "/places/search?keyword=x&mode=textsearch")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.msg, decode(t, rec)["error"])
		})
	}
}

func TestSearch_CustomRadii(t *testing.T) {
	places := mocks.NewMockClient(t)
	places.On("NearbySearch", mock.Anything, mock.MatchedBy(func(r google.NearbySearchRequest) bool {
		return r.Radius == 1500
	})).Return(upstreamBody, nil).Once()

	s := New(Config{NearbyRadiusM: 1500}, Upstreams{Places: places})
	rec := get(t, s.Handler(), "/places/search?keyword=bank&mode=nearbysearch&lat=1&lng=2")

	assert.Equal(t, http.StatusOK, rec.Code)
}
