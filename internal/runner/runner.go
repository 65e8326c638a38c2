// Package runner orchestrates one encode → transport → normalize cycle.
package runner

import (
	"context"

	"ai-multi/internal/config"
	"ai-multi/internal/encode"
	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/models"
	"ai-multi/internal/normalize"
	"ai-multi/internal/transport"
	"ai-multi/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes independent, stateless runs: one user action, one
// blocking webhook call, one record list.
type Runner struct {
	cfg     *config.Config
	encoder *encode.Encoder
	client  *transport.Client
}

// NewRunner wires a runner from its injected parts
func NewRunner(cfg *config.Config, encoder *encode.Encoder, client *transport.Client) *Runner {
	return &Runner{cfg: cfg, encoder: encoder, client: client}
}

// Run performs one full cycle. Failures follow the run taxonomy: config,
// validation, request or HTTP error; normalization itself cannot fail.
func (r *Runner) Run(ctx context.Context, in models.Input) (*models.RunResult, error) {
	if r.cfg.WebhookURL == "" {
		return nil, app_errors.NewConfigError("webhook not configured: set N8N_WEBHOOK_URL")
	}

	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"run_id":     runID,
		"input_type": in.Type,
		"models":     in.Models,
	})

	req, err := r.encoder.Build(ctx, in)
	if err != nil {
		log.WithField("error", err).Debug("Request encoding rejected the input")
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.TimeoutFor(in.Type))
	defer cancel()

	log.Debug("Dispatching webhook request")
	result, err := r.client.Do(callCtx, req)
	if err != nil {
		if httpErr, ok := app_errors.AsHTTP(err); ok {
			log.WithFields(logrus.Fields{
				"status_code": httpErr.StatusCode,
				"body":        utils.TruncateString(httpErr.Body, 500),
			}).Error("Webhook answered with an error status")
		} else {
			log.WithField("error", err).Error("Webhook request failed")
		}
		return nil, err
	}

	records := normalize.Normalize(result.Body)
	log.WithFields(logrus.Fields{
		"status_code": result.StatusCode,
		"duration_ms": result.Elapsed.Milliseconds(),
		"records":     len(records),
	}).Info("Run completed")

	return &models.RunResult{
		RunID:   runID,
		Records: records,
		Elapsed: result.Elapsed,
	}, nil
}
