package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.Error(w, "pet not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", 0)
	require.NoError(t, err)

	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "health", &out))
	assert.Equal(t, "ok", out.Status)

	err = c.GetJSON(context.Background(), "/api/pets/9", nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "pet not found", httpErr.Body)
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	_, err := c.resolveURL("/health")
	assert.Error(t, err, "relative path without base url")

	u, err := c.resolveURL("http://example.com/health")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/health", u)

	_, err = NewWithBaseURL("::not a url", 0)
	assert.Error(t, err)
}
