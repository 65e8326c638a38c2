package encode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"ai-multi/internal/config"
	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(selection config.SelectionMode, encoding config.UploadEncoding) *config.Config {
	return &config.Config{
		WebhookURL:     "https://example.test/webhook/multi",
		SelectionMode:  selection,
		UploadEncoding: encoding,
		TextTimeout:    180 * time.Second,
		UploadTimeout:  300 * time.Second,
		MaxFileSize:    1024 * 1024,
	}
}

func pngFile(name string) *models.FileUpload {
	return &models.FileUpload{
		Name: name,
		MIME: "image/png",
		Data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3},
	}
}

func TestBuild_Text(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingAuto))

	req, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeText,
		Prompt: "summarize this",
		Models: []string{"gpt4o"},
	})

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://example.test/webhook/multi", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"prompt":"summarize this","models":["gpt4o"],"inputType":"text"}`, string(body))
}

func TestBuild_RawUpload(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingRaw))
	file := &models.FileUpload{Name: "clip.mp3", MIME: "audio/mpeg", Data: []byte("mp3 bytes")}

	req, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeAudio,
		Prompt: "transcribe",
		Models: []string{"whisper"},
		File:   file,
	})

	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", req.Header.Get("Content-Type"))
	assert.Equal(t, "clip.mp3", req.Header.Get("Filename"))
	assert.Equal(t, `["whisper"]`, req.Header.Get("Models"))
	assert.Equal(t, "audio", req.Header.Get("Input-Type"))
	assert.Equal(t, "transcribe", req.Header.Get("Prompt"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes", string(body))
}

func TestBuild_MultipartUpload(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingMultipart))
	file := pngFile("photo.png")

	req, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Prompt: "what is this",
		Models: []string{"gpt4o-vision"},
		File:   file,
	})

	require.NoError(t, err)
	mediaType := req.Header.Get("Content-Type")
	require.True(t, strings.HasPrefix(mediaType, "multipart/form-data"))

	require.NoError(t, req.ParseMultipartForm(1<<20))
	assert.Equal(t, `["gpt4o-vision"]`, req.FormValue("models"))
	assert.Equal(t, "image", req.FormValue("inputType"))
	assert.Equal(t, "what is this", req.FormValue("prompt"))

	uploaded, header, err := req.FormFile("file")
	require.NoError(t, err)
	defer uploaded.Close()
	assert.Equal(t, "photo.png", header.Filename)
	assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

	data, err := io.ReadAll(uploaded)
	require.NoError(t, err)
	assert.Equal(t, file.Data, data)
}

func TestBuild_DataURLUpload(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingDataURL))
	file := pngFile("photo.png")

	req, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Prompt: "describe",
		Models: []string{"gpt4o-vision"},
		File:   file,
	})

	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var payload struct {
		Prompt    string   `json:"prompt"`
		Models    []string `json:"models"`
		InputType string   `json:"inputType"`
		FileName  string   `json:"fileName"`
		MIMEType  string   `json:"mimeType"`
		Data      string   `json:"data"`
	}
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "describe", payload.Prompt)
	assert.Equal(t, []string{"gpt4o-vision"}, payload.Models)
	assert.Equal(t, "image", payload.InputType)
	assert.Equal(t, "photo.png", payload.FileName)
	assert.Equal(t, "image/png", payload.MIMEType)

	require.True(t, strings.HasPrefix(payload.Data, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload.Data, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, file.Data, decoded)
}

func TestBuild_AutoEncoding(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingAuto))

	audioReq, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeAudio,
		Models: []string{"whisper"},
		File:   &models.FileUpload{Name: "a.wav", MIME: "audio/wav", Data: []byte("wav")},
	})
	require.NoError(t, err)
	// audio goes out as raw bytes
	assert.Equal(t, "a.wav", audioReq.Header.Get("Filename"))

	imageReq, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Models: []string{"gpt4o-vision"},
		File:   pngFile("p.png"),
	})
	require.NoError(t, err)
	// images go out as multipart
	assert.True(t, strings.HasPrefix(imageReq.Header.Get("Content-Type"), "multipart/form-data"))
}

func TestBuild_MissingFile(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingAuto))

	_, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Models: []string{"gpt4o-vision"},
	})

	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))
}

func TestBuild_WrongExtension(t *testing.T) {
	enc := NewEncoder(testConfig(config.SelectionSingle, config.EncodingAuto))

	_, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeAudio,
		Models: []string{"whisper"},
		File:   &models.FileUpload{Name: "notes.txt", Data: []byte("x")},
	})

	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))
	assert.Contains(t, err.Error(), ".txt")
}

func TestBuild_OversizedFile(t *testing.T) {
	cfg := testConfig(config.SelectionSingle, config.EncodingAuto)
	cfg.MaxFileSize = 4
	enc := NewEncoder(cfg)

	_, err := enc.Build(context.Background(), models.Input{
		Type:   models.InputTypeImage,
		Models: []string{"gpt4o-vision"},
		File:   pngFile("big.png"),
	})

	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))
}

func TestBuild_SelectionModes(t *testing.T) {
	single := NewEncoder(testConfig(config.SelectionSingle, config.EncodingAuto))
	multi := NewEncoder(testConfig(config.SelectionMulti, config.EncodingAuto))

	_, err := single.Build(context.Background(), models.Input{
		Type:   models.InputTypeText,
		Models: []string{"gpt4o", "gpt4o-mini"},
	})
	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))

	_, err = multi.Build(context.Background(), models.Input{
		Type:   models.InputTypeText,
		Models: nil,
	})
	require.Error(t, err)
	assert.True(t, app_errors.IsValidation(err))

	_, err = multi.Build(context.Background(), models.Input{
		Type:   models.InputTypeText,
		Models: []string{"gpt4o", "gpt4o-mini"},
	})
	assert.NoError(t, err)
}
