//go:build !integration

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/zittyzoom/internal/config"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.Google.PlacesKey = "pkey"
	c.Google.PlacesBaseURL = "http://127.0.0.1:1"
	c.Wikipedia.BaseURL = "http://127.0.0.1:1"
	c.Search.AutocompleteRadiusM = 50000
	c.Search.NearbyRadiusM = 3000
	c.Server.CORSOrigins = []string{"*"}
	return c
}

func TestBuildGateway_HealthEndpoint(t *testing.T) {
	h := buildGateway(testConfig()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestBuildGateway_UnconfiguredProviders(t *testing.T) {
	c := testConfig()
	h := buildGateway(c).Handler()

	tests := []struct {
		name string
		path string
	}{
		{"weather without key", "/weather?lat=1&lng=2"},
		{"map id not set", "/config/map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
		})
	}
}

func TestBuildGateway_MissingPlacesKeyFailsPerRequest(t *testing.T) {
	c := testConfig()
	c.Google.PlacesKey = ""
	c.Server.Port = 8080
	c.Gateway.URL = "http://localhost:8080"
	c.Location.TimeoutSecs = 10
	require.NoError(t, c.Validate("serve"))

	h := buildGateway(c).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/places/search?keyword=coffee&mode=textsearch", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"server configuration error: places API key missing"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBuildGateway_MapID(t *testing.T) {
	c := testConfig()
	c.Maps.MapID = "map-123"
	h := buildGateway(c).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/config/map", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"mapId":"map-123"}`, rr.Body.String())
}

// getFreePort returns a free TCP port on localhost.
func getFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}

func TestBuildGateway_ServerLifecycle(t *testing.T) {
	port := getFreePort(t)
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           buildGateway(testConfig()).Handler(),
		ReadHeaderTimeout: time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	var ready bool
	for i := 0; i < 50; i++ {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			_ = resp.Body.Close()
			ready = resp.StatusCode == http.StatusOK
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
