package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/jsonx"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	return req
}

func TestDo_JSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"gpt4o": {"response": "hi", "latency": 120}}`))
	}))
	defer server.Close()

	result, err := NewClient().Do(context.Background(), post(t, server.URL))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Greater(t, result.Elapsed, time.Duration(0))

	model, ok := result.Body.Get("gpt4o")
	require.True(t, ok)
	resp, ok := model.Get("response")
	require.True(t, ok)
	assert.Equal(t, "hi", resp.Str())
}

func TestDo_NonJSONBody_WrappedAsRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text answer"))
	}))
	defer server.Close()

	result, err := NewClient().Do(context.Background(), post(t, server.URL))

	require.NoError(t, err)
	raw, ok := result.Body.Get("raw")
	require.True(t, ok)
	assert.Equal(t, "plain text answer", raw.Str())
}

func TestDo_Non2xx_SurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	_, err := NewClient().Do(context.Background(), post(t, server.URL))

	require.Error(t, err)
	httpErr, ok := app_errors.AsHTTP(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "not found", httpErr.Body)
}

func TestDo_GzipBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "zstd")

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte(`{"m": {"response": "zipped"}}`))
		gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	result, err := NewClient().Do(context.Background(), post(t, server.URL))

	require.NoError(t, err)
	model, ok := result.Body.Get("m")
	require.True(t, ok)
	resp, _ := model.Get("response")
	assert.Equal(t, "zipped", resp.Str())
}

func TestDo_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient().Do(ctx, post(t, server.URL))

	require.Error(t, err)
	var reqErr *app_errors.RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestDo_ConnectionRefused(t *testing.T) {
	_, err := NewClient().Do(context.Background(), post(t, "http://127.0.0.1:1/webhook"))

	require.Error(t, err)
	var reqErr *app_errors.RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestDo_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	result, err := NewClient().Do(context.Background(), post(t, server.URL))

	require.NoError(t, err)
	// an empty 2xx body is not JSON and falls back to the raw wrapper
	raw, ok := result.Body.Get("raw")
	require.True(t, ok)
	assert.Equal(t, jsonx.KindString, raw.Kind())
	assert.Equal(t, "", raw.Str())
}
