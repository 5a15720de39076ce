package collector

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "grant-scraper/core/errors"
	"grant-scraper/core/interfaces"
)

var _ interfaces.HTTPClient = (*Client)(nil)

func TestClient_Get_Success(t *testing.T) {
	var capturedUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><a href=\"/grant/detail/1\">助成</a></body></html>"))
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second, "TestAgent/1.0").Get(context.Background(), server.URL)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(body), "助成")
	assert.Equal(t, "text/html; charset=utf-8", resp.Header("Content-Type"))
	assert.Equal(t, "TestAgent/1.0", capturedUserAgent)
}

func TestClient_Get_BodyCanBeReadTwice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("feed"))
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second, "").Get(context.Background(), server.URL)
	require.NoError(t, err)

	first, _ := io.ReadAll(resp.Body())
	second, _ := io.ReadAll(resp.Body())
	assert.Equal(t, "feed", string(first))
	assert.Equal(t, "feed", string(second))
}

func TestClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewClient(5*time.Second, "").Get(context.Background(), server.URL)

	assert.Nil(t, resp)
	var fetchErr *coreerrors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestClient_Get_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(5*time.Second, "").Get(ctx, "http://127.0.0.1:1/")

	assert.True(t, coreerrors.IsFetch(err))
	assert.ErrorIs(t, err, context.Canceled)
}
