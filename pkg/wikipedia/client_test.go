package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "extracts", q.Get("prop"))
		assert.Equal(t, "Johannesburg, South Africa", q.Get("titles"))
		_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Johannesburg","extract":"Johannesburg is a city."}}}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	extract, err := client.Extract(context.Background(), "Johannesburg, South Africa")

	require.NoError(t, err)
	assert.Equal(t, "Johannesburg is a city.", extract)
}

func TestExtract_MissingPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nowhere","missing":""}}}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Extract(context.Background(), "Nowhere")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtract_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"badvalue","info":"Unrecognized value for parameter"}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Extract(context.Background(), "x")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Unrecognized value for parameter", apiErr.Message)
}

func TestExtract_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Extract(context.Background(), "x")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}
