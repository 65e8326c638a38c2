package runner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-multi/internal/config"
	"ai-multi/internal/encode"
	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/mockhook"
	"ai-multi/internal/models"
	"ai-multi/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(webhookURL string) *Runner {
	cfg := &config.Config{
		WebhookURL:     webhookURL,
		SelectionMode:  config.SelectionSingle,
		UploadEncoding: config.EncodingAuto,
		TextTimeout:    180 * time.Second,
		UploadTimeout:  300 * time.Second,
		MaxFileSize:    1024 * 1024,
	}
	return NewRunner(cfg, encode.NewEncoder(cfg), transport.NewClient())
}

func textInput() models.Input {
	return models.Input{
		Type:   models.InputTypeText,
		Prompt: "hello",
		Models: []string{"gpt4o"},
	}
}

func TestRun_SuccessAgainstMockWebhook(t *testing.T) {
	server := httptest.NewServer(mockhook.New(mockhook.ShapeMap).Handler())
	defer server.Close()

	result, err := newRunner(server.URL + "/webhook/multi").Run(context.Background(), textInput())

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Greater(t, result.Elapsed, time.Duration(0))
	require.Len(t, result.Records, 1)
	assert.Equal(t, "gpt4o", result.Records[0].Model)
	assert.NotEmpty(t, result.Records[0].Response)
}

func TestRun_EnvelopeShape(t *testing.T) {
	server := httptest.NewServer(mockhook.New(mockhook.ShapeEnvelope).Handler())
	defer server.Close()

	result, err := newRunner(server.URL + "/webhook/multi").Run(context.Background(), textInput())

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "gpt4o", result.Records[0].Model)
	assert.Greater(t, result.Records[0].Latency, float64(0))
}

func TestRun_RawShape_SingleRawCard(t *testing.T) {
	server := httptest.NewServer(mockhook.New(mockhook.ShapeRaw).Handler())
	defer server.Close()

	result, err := newRunner(server.URL + "/webhook/multi").Run(context.Background(), textInput())

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "raw", result.Records[0].Model)
	assert.NotEmpty(t, result.Records[0].Response)
}

func TestRun_WebhookUnset(t *testing.T) {
	_, err := newRunner("").Run(context.Background(), textInput())

	require.Error(t, err)
	assert.True(t, app_errors.IsConfig(err))
}

func TestRun_ValidationFailure_NoNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := newRunner(server.URL).Run(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Models: []string{"gpt4o-vision"},
	})

	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))
	assert.False(t, called)
}

func TestRun_Non2xxSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	_, err := newRunner(server.URL).Run(context.Background(), textInput())

	require.Error(t, err)
	httpErr, ok := app_errors.AsHTTP(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "not found", httpErr.Body)
}
