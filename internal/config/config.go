// Package config loads the process configuration once at startup.
//
// The webhook URL only ever comes from the environment; there is no
// compiled-in endpoint. A missing URL is tolerated at load time so the
// local commands keep working, and rejected when a run needs it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// SelectionMode controls how many models one run may address
type SelectionMode string

const (
	SelectionSingle SelectionMode = "single"
	SelectionMulti  SelectionMode = "multi"
)

// UploadEncoding selects how file uploads are put on the wire
type UploadEncoding string

const (
	// EncodingAuto mirrors the historical behavior: raw bytes for audio,
	// multipart for images.
	EncodingAuto      UploadEncoding = "auto"
	EncodingRaw       UploadEncoding = "raw"
	EncodingMultipart UploadEncoding = "multipart"
	EncodingDataURL   UploadEncoding = "dataurl"
)

// Timeout floors reflect expected model-inference latency.
const (
	MinTextTimeout   = 180 * time.Second
	MinUploadTimeout = 300 * time.Second
)

// Config holds all settings, populated once and injected everywhere
type Config struct {
	WebhookURL     string
	SelectionMode  SelectionMode
	UploadEncoding UploadEncoding
	TextTimeout    time.Duration
	UploadTimeout  time.Duration
	MaxFileSize    int64
	Host           string
	Port           int
	LogLevel       string
	LogFormat      string
}

// Load reads the environment (honoring a .env file when present) into a
// Config. Invalid enum values or malformed numbers fail the load.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		WebhookURL:     os.Getenv("N8N_WEBHOOK_URL"),
		SelectionMode:  SelectionMode(getEnv("SELECTION_MODE", string(SelectionSingle))),
		UploadEncoding: UploadEncoding(getEnv("UPLOAD_ENCODING", string(EncodingAuto))),
		Host:           getEnv("HOST", "0.0.0.0"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.SelectionMode {
	case SelectionSingle, SelectionMulti:
	default:
		return nil, app_errors.NewConfigError("invalid SELECTION_MODE %q (expected single or multi)", cfg.SelectionMode)
	}

	switch cfg.UploadEncoding {
	case EncodingAuto, EncodingRaw, EncodingMultipart, EncodingDataURL:
	default:
		return nil, app_errors.NewConfigError("invalid UPLOAD_ENCODING %q (expected auto, raw, multipart or dataurl)", cfg.UploadEncoding)
	}

	textSeconds, err := getEnvInt("TEXT_TIMEOUT", 180)
	if err != nil {
		return nil, err
	}
	uploadSeconds, err := getEnvInt("UPLOAD_TIMEOUT", 300)
	if err != nil {
		return nil, err
	}
	cfg.TextTimeout = floorDuration(time.Duration(textSeconds)*time.Second, MinTextTimeout)
	cfg.UploadTimeout = floorDuration(time.Duration(uploadSeconds)*time.Second, MinUploadTimeout)

	maxMB, err := getEnvInt("MAX_FILE_SIZE_MB", 32)
	if err != nil {
		return nil, err
	}
	if maxMB <= 0 {
		return nil, app_errors.NewConfigError("MAX_FILE_SIZE_MB must be positive, got %d", maxMB)
	}
	cfg.MaxFileSize = int64(maxMB) * 1024 * 1024

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, app_errors.NewConfigError("PORT must be in 1..65535, got %d", port)
	}
	cfg.Port = port

	return cfg, nil
}

// TimeoutFor returns the transport deadline for the given modality
func (c *Config) TimeoutFor(t models.InputType) time.Duration {
	if t.RequiresFile() {
		return c.UploadTimeout
	}
	return c.TextTimeout
}

// Addr returns the web UI listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, app_errors.NewConfigError("invalid %s: %q is not an integer", key, v)
	}
	return n, nil
}

func floorDuration(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}
