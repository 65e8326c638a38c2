// Package encode builds the single outbound webhook request of a run.
package encode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"ai-multi/internal/config"
	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/models"
	"ai-multi/internal/utils"
)

var allowedExtensions = map[models.InputType][]string{
	models.InputTypeImage: {".png", ".jpg", ".jpeg"},
	models.InputTypeAudio: {".wav", ".mp3", ".m4a"},
}

// Encoder turns validated run input into one *http.Request addressed to
// the configured webhook.
type Encoder struct {
	cfg *config.Config
}

// NewEncoder creates an Encoder bound to the given configuration
func NewEncoder(cfg *config.Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// textPayload is the JSON body of a text run
type textPayload struct {
	Prompt    string   `json:"prompt"`
	Models    []string `json:"models"`
	InputType string   `json:"inputType"`
}

// dataURLPayload is the JSON body of an upload run in dataurl encoding
type dataURLPayload struct {
	Prompt    string   `json:"prompt"`
	Models    []string `json:"models"`
	InputType string   `json:"inputType"`
	FileName  string   `json:"fileName"`
	MIMEType  string   `json:"mimeType"`
	Data      string   `json:"data"`
}

// Build validates in and produces the outbound POST request
func (e *Encoder) Build(ctx context.Context, in models.Input) (*http.Request, error) {
	if err := e.validate(in); err != nil {
		return nil, err
	}

	if in.Type == models.InputTypeText {
		return e.buildText(ctx, in)
	}

	switch e.resolveEncoding(in.Type) {
	case config.EncodingRaw:
		return e.buildRaw(ctx, in)
	case config.EncodingMultipart:
		return e.buildMultipart(ctx, in)
	case config.EncodingDataURL:
		return e.buildDataURL(ctx, in)
	default:
		return nil, app_errors.NewConfigError("unsupported upload encoding %q", e.cfg.UploadEncoding)
	}
}

// resolveEncoding maps the auto profile onto the historical per-modality
// defaults: raw bytes for audio, multipart for images.
func (e *Encoder) resolveEncoding(t models.InputType) config.UploadEncoding {
	if e.cfg.UploadEncoding != config.EncodingAuto {
		return e.cfg.UploadEncoding
	}
	if t == models.InputTypeAudio {
		return config.EncodingRaw
	}
	return config.EncodingMultipart
}

func (e *Encoder) validate(in models.Input) error {
	switch e.cfg.SelectionMode {
	case config.SelectionSingle:
		if len(in.Models) != 1 {
			return app_errors.NewValidationError("select exactly one model, got %d", len(in.Models))
		}
	case config.SelectionMulti:
		if len(in.Models) == 0 {
			return app_errors.NewValidationError("select at least one model")
		}
	}

	if !in.Type.RequiresFile() {
		return nil
	}

	if in.File == nil || len(in.File.Data) == 0 {
		return app_errors.NewValidationError("upload an %s file", in.Type)
	}
	if int64(len(in.File.Data)) > e.cfg.MaxFileSize {
		return app_errors.NewValidationError("file %s exceeds the %d MB limit", in.File.Name, e.cfg.MaxFileSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(in.File.Name))
	for _, allowed := range allowedExtensions[in.Type] {
		if ext == allowed {
			return nil
		}
	}
	return app_errors.NewValidationError("unsupported %s file type %q (expected %s)",
		in.Type, ext, strings.Join(allowedExtensions[in.Type], ", "))
}

func (e *Encoder) buildText(ctx context.Context, in models.Input) (*http.Request, error) {
	body, err := json.Marshal(textPayload{
		Prompt:    in.Prompt,
		Models:    in.Models,
		InputType: string(in.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal text payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build text request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// buildRaw sends the file bytes as the body with all metadata in headers.
func (e *Encoder) buildRaw(ctx context.Context, in models.Input) (*http.Request, error) {
	modelList, err := json.Marshal(in.Models)
	if err != nil {
		return nil, fmt.Errorf("marshal model list: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.WebhookURL, bytes.NewReader(in.File.Data))
	if err != nil {
		return nil, fmt.Errorf("build raw request: %w", err)
	}
	req.Header.Set("Content-Type", utils.ResolveMIME(in.File.MIME, in.File.Data))
	req.Header.Set("Filename", in.File.Name)
	req.Header.Set("Models", string(modelList))
	req.Header.Set("Input-Type", string(in.Type))
	req.Header.Set("Prompt", in.Prompt)
	return req, nil
}

// buildMultipart sends the file under a "file" form field with sibling
// value fields for the metadata.
func (e *Encoder) buildMultipart(ctx context.Context, in models.Input) (*http.Request, error) {
	modelList, err := json.Marshal(in.Models)
	if err != nil {
		return nil, fmt.Errorf("marshal model list: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(in.File.Name)))
	header.Set("Content-Type", utils.ResolveMIME(in.File.MIME, in.File.Data))
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(in.File.Data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	fields := map[string]string{
		"models":    string(modelList),
		"inputType": string(in.Type),
		"prompt":    in.Prompt,
	}
	for _, name := range []string{"models", "inputType", "prompt"} {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.WebhookURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// buildDataURL sends a JSON body carrying the file as a base64 data: URL.
func (e *Encoder) buildDataURL(ctx context.Context, in models.Input) (*http.Request, error) {
	mime := utils.ResolveMIME(in.File.MIME, in.File.Data)
	body, err := json.Marshal(dataURLPayload{
		Prompt:    in.Prompt,
		Models:    in.Models,
		InputType: string(in.Type),
		FileName:  in.File.Name,
		MIMEType:  mime,
		Data:      utils.MakeDataURL(mime, in.File.Data),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal dataurl payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build dataurl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
