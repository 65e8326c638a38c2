// Package transport performs the single webhook call of a run.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/jsonx"
	"ai-multi/internal/utils"

	"github.com/sirupsen/logrus"
)

// Result is the decoded outcome of a successful (2xx) call
type Result struct {
	StatusCode int
	Body       jsonx.Value
	RawBody    []byte
	Elapsed    time.Duration
}

// Client executes webhook requests. The per-run deadline comes from the
// request context; the http.Client itself carries no timeout.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a webhook transport client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// Do executes req and reads the full body, measuring wall-clock time
// around both. Non-2xx answers fail with the status code and raw body
// verbatim. 2xx bodies that do not decode as JSON are wrapped as the
// object {"raw": <text>} so normalization always has a value to work on.
func (c *Client) Do(ctx context.Context, req *http.Request) (*Result, error) {
	req = req.WithContext(ctx)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &app_errors.RequestError{Err: fmt.Errorf("webhook request failed: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &app_errors.RequestError{Err: fmt.Errorf("read webhook response: %w", err)}
	}
	elapsed := time.Since(start)

	decompressed, err := utils.DecompressResponse(resp.Header.Get("Content-Encoding"), bodyBytes)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"content_encoding": resp.Header.Get("Content-Encoding"),
			"error":            err,
		}).Warn("Decompression failed, using original data")
		decompressed = bodyBytes
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &app_errors.HTTPError{StatusCode: resp.StatusCode, Body: string(decompressed)}
	}

	body, decodeErr := jsonx.Decode(decompressed)
	if decodeErr != nil {
		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body_bytes":  len(decompressed),
		}).Debug("Webhook answered with non-JSON body, wrapping as raw text")
		body = jsonx.Object(jsonx.Member{Key: "raw", Value: jsonx.String(string(decompressed))})
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
		RawBody:    decompressed,
		Elapsed:    elapsed,
	}, nil
}
